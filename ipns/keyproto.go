package ipns

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// KeyType mirrors the libp2p crypto.pb KeyType enum. Only Ed25519 is
// produced by this package, but the wire format carries the tag so a
// future key type can be added without breaking persisted key files.
type KeyType int32

const (
	KeyTypeRSA       KeyType = 0
	KeyTypeEd25519   KeyType = 1
	KeyTypeSecp256k1 KeyType = 2
	KeyTypeECDSA     KeyType = 3
)

// Field numbers for the libp2p crypto.pb PublicKey/PrivateKey messages.
// Both messages share this layout: Type=1 (varint), Data=2 (bytes).
const (
	keyFieldType = protowire.Number(1)
	keyFieldData = protowire.Number(2)
)

// marshalKeyProto encodes a (Type, Data) pair using the libp2p
// crypto.pb wire layout shared by PublicKey and PrivateKey messages.
func marshalKeyProto(typ KeyType, data []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, keyFieldType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(typ))
	b = protowire.AppendTag(b, keyFieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, data)
	return b
}

// unmarshalKeyProto decodes a (Type, Data) pair from the libp2p
// crypto.pb wire layout. Unknown fields are skipped and dropped.
func unmarshalKeyProto(b []byte) (KeyType, []byte, error) {
	var typ KeyType
	var data []byte
	var sawType, sawData bool

	for len(b) > 0 {
		num, wireType, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, nil, fmt.Errorf("%w: bad tag", ErrInvalidKey)
		}
		b = b[n:]

		switch {
		case num == keyFieldType && wireType == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: bad type field", ErrInvalidKey)
			}
			typ = KeyType(v)
			sawType = true
			b = b[n:]
		case num == keyFieldData && wireType == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: bad data field", ErrInvalidKey)
			}
			data = append([]byte(nil), v...)
			sawData = true
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, wireType, b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: bad unknown field", ErrInvalidKey)
			}
			b = b[n:]
		}
	}

	if !sawType || !sawData {
		return 0, nil, fmt.Errorf("%w: missing type or data field", ErrInvalidKey)
	}
	return typ, data, nil
}
