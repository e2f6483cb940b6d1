// ipns is the command-line surface over the ipns/ipnsclient libraries:
// generate a keypair, publish a value under it, resolve a name to its
// current value, and inspect a raw wire record.
//
// Usage:
//
//	ipns create [--output PATH]
//	ipns publish --key PATH --value STR
//	ipns resolve NAME
//	ipns parse [RECORD_B64]
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(os.Args[2:])
	case "publish":
		err = runPublish(os.Args[2:])
	case "resolve":
		err = runResolve(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("ipns: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ipns <create|publish|resolve|parse> [flags]")
}
