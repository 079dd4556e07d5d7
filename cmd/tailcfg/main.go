// Command tailcfg validates and inspects style configuration documents.
package main

import (
	"os"

	"github.com/rustytube/tailcfg/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
