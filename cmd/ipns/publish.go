package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/primal-host/ipnsgo/ipns"
	"github.com/primal-host/ipnsgo/ipnsclient"
)

func runPublish(args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	keyPath := fs.String("key", "", "path to key file")
	value := fs.String("value", "", "value to publish")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyPath == "" || *value == "" {
		return fmt.Errorf("publish: --key and --value are required")
	}

	keyBytes, err := os.ReadFile(*keyPath)
	if err != nil {
		return fmt.Errorf("publish: read key file: %w", err)
	}
	wn, err := ipns.DecodeWritableName(keyBytes)
	if err != nil {
		return fmt.Errorf("publish: decode key: %w", err)
	}
	name, err := wn.ToName()
	if err != nil {
		return fmt.Errorf("publish: derive name: %w", err)
	}

	log.Printf("publishing %s: %q", name.String(), *value)

	ctx := context.Background()
	client := ipnsclient.New()

	prev := resolvePrevious(ctx, client, name)

	var rev ipns.Revision
	if prev != nil {
		log.Printf("found existing revision at sequence %d, incrementing", prev.Sequence)
		rev = prev.Increment(*value)
	} else {
		log.Printf("no prior revision found, starting at sequence 0")
		rev = ipns.V0(name, *value)
	}

	if err := client.Publish(ctx, wn, rev); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	fmt.Printf("Published %s at sequence %d\n", name.String(), rev.Sequence)
	return nil
}

// resolvePrevious looks up the last published revision so publish can
// increment its sequence number. On a 404 it starts fresh (nil). On
// any other resolve failure it tries the trustless-gateway fallback;
// if that also fails it starts fresh rather than surfacing an error —
// publish always proceeds.
func resolvePrevious(ctx context.Context, client *ipnsclient.Client, name ipns.Name) *ipns.Revision {
	rev, err := client.Resolve(ctx, name)
	if err == nil {
		return &rev
	}

	var apiErr *ipnsclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
		return nil
	}

	log.Printf("resolve failed (%v), trying trustless-gateway fallback", err)
	if gwRev, gwErr := resolveFromGateway(ctx, name); gwErr == nil {
		return &gwRev
	}
	return nil
}
