// Command kvs-client sends exactly one set, get, or rm request to a
// kvs-server and reports the outcome on stdout/stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iamNilotpal/ignite/internal/client"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "set":
		os.Exit(runSet(os.Args[2:]))
	case "get":
		os.Exit(runGet(os.Args[2:]))
	case "rm":
		os.Exit(runRemove(os.Args[2:]))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kvs-client <set|get|rm> ... [--addr IP:PORT]")
}

func runSet(args []string) int {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	addr := fs.String("addr", options.DefaultBindAddr, "IP:PORT of the server")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: kvs-client set KEY VALUE [--addr IP:PORT]")
		return 1
	}
	key, value := fs.Arg(0), fs.Arg(1)

	c, err := client.Dial(*addr)
	if err != nil {
		return fail(err)
	}
	defer c.Close()

	if err := c.Set(key, value); err != nil {
		return fail(err)
	}
	return 0
}

func runGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	addr := fs.String("addr", options.DefaultBindAddr, "IP:PORT of the server")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs-client get KEY [--addr IP:PORT]")
		return 1
	}
	key := fs.Arg(0)

	c, err := client.Dial(*addr)
	if err != nil {
		return fail(err)
	}
	defer c.Close()

	value, found, err := c.Get(key)
	if err != nil {
		return fail(err)
	}
	if !found {
		// Absence is not an error: print the canonical message and exit clean.
		fmt.Println("Key not found")
		return 0
	}
	fmt.Println(value)
	return 0
}

func runRemove(args []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	addr := fs.String("addr", options.DefaultBindAddr, "IP:PORT of the server")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs-client rm KEY [--addr IP:PORT]")
		return 1
	}
	key := fs.Arg(0)

	c, err := client.Dial(*addr)
	if err != nil {
		return fail(err)
	}
	defer c.Close()

	if err := c.Remove(key); err != nil {
		if remoteErr, ok := errors.AsRemoteError(err); ok {
			fmt.Fprintln(os.Stderr, remoteErr.Message())
			return 1
		}
		return fail(err)
	}
	return 0
}

// fail prints err to stderr and returns the conventional non-zero exit
// code for transport and local failures.
func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
