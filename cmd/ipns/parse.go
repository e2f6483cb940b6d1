package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/primal-host/ipnsgo/ipns"
	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var b64 string
	if fs.NArg() > 0 {
		b64 = fs.Arg(0)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("parse: read stdin: %w", err)
		}
		b64 = strings.TrimSpace(string(data))
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("parse: base64 decode: %w", err)
	}

	entry, err := ipnspb.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	// Recover the Name from the record's pub_key field with
	// ipns.NameFromBytes, then validate and project before printing
	// anything. A record without pub_key, which includes every record
	// ipns.BuildEntry produces, is rejected here with an error. A
	// v2-only record's authoritative fields live in the CBOR data, not
	// the top-level protobuf struct, so the wire entry itself is never
	// the thing displayed here.
	name, err := ipns.NameFromBytes(entry.PubKey)
	if err != nil {
		return fmt.Errorf("parse: derive name from pub_key: %w", err)
	}
	pub, err := name.PublicKey()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := ipns.Validate(entry, pub); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	rev, err := ipns.Project(entry, name)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Printf("name:      %s\n", name.String())
	fmt.Printf("value:     %s\n", rev.Value)
	fmt.Printf("validity:  %s\n", rev.ValidityString())
	fmt.Printf("sequence:  %d\n", rev.Sequence)
	fmt.Printf("ttl:       %s\n", rev.TTL)
	return nil
}
