// Command manifold runs constrained traversals and samplers over the
// built-in problems.
//
//	manifold traverse --problem sphere --space atlas
//	manifold sample --problem torus --space nullspace -n 1000 --workers 4
//	manifold problems
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
