// Command isofit fits isotonic and radial regressions from the command line
// and converts fits to and from model blobs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "isofit:", err)
		os.Exit(1)
	}
}
