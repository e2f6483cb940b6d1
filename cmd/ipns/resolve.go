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

func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("resolve: expected exactly one NAME argument")
	}
	nameStr := fs.Arg(0)

	name, err := ipns.ParseName(nameStr)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	log.Printf("resolving %s", nameStr)
	client := ipnsclient.New()
	rev, err := client.Resolve(context.Background(), name)
	if err != nil {
		var apiErr *ipnsclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			fmt.Fprintf(os.Stderr, "no record found for key %s\n", nameStr)
			return nil
		}
		return fmt.Errorf("resolve: %w", err)
	}

	fmt.Println(rev.Value)
	return nil
}
