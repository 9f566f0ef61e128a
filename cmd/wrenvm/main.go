// Command wrenvm is the host program around the execution core: it loads
// compiled bytecode containers (see internal/bytecode) and runs, inspects
// or disassembles them. There is no compiler here — spec.md §1 scopes that
// out — so every subcommand's input is already-assembled bytecode, the
// same contract the bytecode and corelib tests use via bytecode.Builder.
//
// Grounded on cmd/viewcore's flag/subcommand split in the teacher repo,
// rebuilt on cobra (already a direct dependency there, used by
// cmd/viewcore/objref.go) instead of the stdlib flag package it happened
// to use for its top-level dispatch.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wrenvm",
		Short:         "run and inspect compiled wren bytecode containers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newHeapCmd())
	root.AddCommand(newReplCmd())
	return root
}
