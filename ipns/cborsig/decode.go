package cborsig

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	cbg "github.com/whyrusleeping/cbor-gen"
)

// errCbor is the sentinel wrapped by every cborsig error.
var errCbor = errors.New("cborsig: cbor codec error")

// readTextString reads a CBOR text string (major type 3).
func readTextString(r *bufio.Reader) (string, error) {
	major, n, err := cbg.CborReadHeader(r)
	if err != nil {
		return "", err
	}
	if major != cbg.MajTextString {
		return "", fmt.Errorf("expected text string, got major type %d", major)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// readByteString reads a CBOR byte string (major type 2).
func readByteString(r *bufio.Reader) ([]byte, error) {
	major, n, err := cbg.CborReadHeader(r)
	if err != nil {
		return nil, err
	}
	if major != cbg.MajByteString {
		return nil, fmt.Errorf("expected byte string, got major type %d", major)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readUint reads a CBOR unsigned integer (major type 0).
func readUint(r *bufio.Reader) (uint64, error) {
	major, n, err := cbg.CborReadHeader(r)
	if err != nil {
		return 0, err
	}
	if major != cbg.MajUnsignedInt {
		return 0, fmt.Errorf("expected unsigned int, got major type %d", major)
	}
	return n, nil
}
