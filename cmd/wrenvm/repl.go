package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl <file.wrenb>",
		Short: "run a bytecode container, then inspect the resulting heap interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runRepl,
	}
}

// runRepl runs the named container to completion, the same as "wrenvm run",
// then drops into a github.com/chzyer/readline prompt for inspecting
// whatever the run left behind on the heap: "objects" walks Heap.ForEachObject,
// "globals" walks the declared global slots, "stat" prints Heap.Stats(), and
// "quit" exits. This is the introspection-after-halt analogue of
// cmd/viewcore's browsing commands, just line-oriented instead of a served
// HTML view.
func runRepl(cmd *cobra.Command, args []string) error {
	m, err := newVM()
	if err != nil {
		return err
	}
	fn, err := loadFile(m, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, runErr := vm.Interpret(m, fn)
	if runErr != nil {
		fmt.Fprintln(cmd.OutOrStderr(), runErr)
	} else {
		fmt.Fprintln(out, vm.Print(result))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "wren> ",
		HistoryFile: "",
		Stdout:      out,
		Stderr:      cmd.OutOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("starting repl: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "quit":
			return nil
		case "objects":
			printObjects(out, m)
		case "globals":
			printGlobals(out, m)
		case "stat":
			printHeapSummary(out, m)
		default:
			fmt.Fprintf(out, "unknown command %q (try: objects, globals, stat, quit)\n", line)
		}
	}
}

// printObjects lists every object on the heap's object-list thread (the one
// the collector sweeps), including any garbage not yet swept.
func printObjects(out io.Writer, m *vm.VM) {
	m.Heap.ForEachObject(func(o value.Obj) bool {
		fmt.Fprintln(out, vm.Print(value.FromObj(o)))
		return true
	})
}

// printGlobals lists every declared global slot by name, in assignment
// order, skipping any that were reserved (e.g. by a forward reference) but
// never actually defined.
func printGlobals(out io.Writer, m *vm.VM) {
	for i := 0; i < m.Globals.Count(); i++ {
		name := m.Globals.Name(i)
		v, ok := m.Global(name)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", name, vm.Print(v))
	}
}

func printHeapSummary(out io.Writer, m *vm.VM) {
	s := m.Heap.Stats()
	fmt.Fprintf(out, "live=%d allocated=%d nextGC=%d lastSwept=%d\n",
		s.LiveObjects, s.TotalAllocated, s.NextGC, s.LastSwept)
}
