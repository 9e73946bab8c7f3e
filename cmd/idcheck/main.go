// Command idcheck validates national identifiers from the shell.
//
//	idcheck validate br_cpf 111.444.777-35
//	idcheck validate cl_rut 12.345.678-5 --strict
//	idcheck types
//	idcheck choices br states
//
// validate exits 1 when the identifier is rejected and 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, errRejected) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
