package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/primal-host/ipnsgo/ipns"
)

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	output := fs.String("output", "", "key file path (default <name>.key)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log.Printf("generating ed25519 keypair")
	wn, err := ipns.NewWritableName()
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	name, err := wn.ToName()
	if err != nil {
		return fmt.Errorf("create: derive name: %w", err)
	}

	path := *output
	if path == "" {
		path = name.String() + ".key"
	}

	log.Printf("writing key file %s", path)
	if err := os.WriteFile(path, wn.Encode(), 0o600); err != nil {
		return fmt.Errorf("create: write key file %s: %w", path, err)
	}

	fmt.Printf("Generated key for %s\n", name.String())
	fmt.Printf("Key written to %s\n", path)
	return nil
}
