package main

import (
	"fmt"
	"os"

	"github.com/fermian/wren/internal/hostenv"
	"github.com/fermian/wren/internal/vm"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.wrenb>",
		Short: "run a compiled bytecode container to completion",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
}

// runRun watches for SIGINT purely to report that a run was interrupted —
// the dispatch loop itself (internal/vm) has no cancellation point, so this
// cannot stop an in-flight instruction, only the process as a whole.
func runRun(cmd *cobra.Command, args []string) error {
	m, err := newVM()
	if err != nil {
		return err
	}
	fn, err := loadFile(m, args[0])
	if err != nil {
		return err
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	hostenv.Interruptible(func(sigCh <-chan os.Signal) {
		go func() {
			v, interpErr := vm.Interpret(m, fn)
			if interpErr != nil {
				done <- outcome{err: interpErr}
				return
			}
			done <- outcome{text: vm.Print(v)}
		}()

		select {
		case o := <-done:
			if o.err != nil {
				err = o.err
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.text)
		case <-sigCh:
			fmt.Fprintln(cmd.OutOrStderr(), "interrupted")
			err = fmt.Errorf("run: interrupted")
		}
	})
	return err
}
