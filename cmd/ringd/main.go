// Command ringd wires the certificateless linkable ring signature core to
// disk and the command line: a KGC setup/issuance surface, the signer's
// two-step key-agreement, ring signing and verification, and linked-signature
// detection.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
