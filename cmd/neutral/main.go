// Command neutral lists the generators linked into this build and traces how
// widget trees load and update against them.
package main

import (
	"os"

	"github.com/go-drift/neutral/cmd/neutral/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
