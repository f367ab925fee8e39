// Command nodectl is a small admin CLI for talking to a running node over
// its public v1 API: check status and submit signed transactions.
package main

import (
	"fmt"
	"os"

	"github.com/nodecore/powchain/app/tooling/nodectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
