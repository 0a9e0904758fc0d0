// Command rosterctl manages players on a running roster server.
package main

import (
	"os"

	"github.com/okian/roster/cmd/rosterctl/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
