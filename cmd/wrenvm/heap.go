package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fermian/wren/internal/vm"
	"github.com/spf13/cobra"
)

func newHeapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heap <file.wrenb>",
		Short: "run a bytecode container and report heap stats afterward",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeap,
	}
	cmd.Flags().Bool("json", false, "report heap stats as JSON instead of a tabwriter table")
	return cmd
}

// runHeap is grounded on cmd/viewcore's "overview" and "breakdown" commands
// (same tabwriter setup, same "run something, then report a stats struct"
// shape) — here the "something" is running the program to completion
// rather than opening a core dump. --json skips the table and marshals the
// run's result (or error) together with Heap.Stats(), for callers that want
// to parse the result.
func runHeap(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	m, err := newVM()
	if err != nil {
		return err
	}
	fn, err := loadFile(m, args[0])
	if err != nil {
		return err
	}
	result, runErr := vm.Interpret(m, fn)
	stats := m.Heap.Stats()
	out := cmd.OutOrStdout()

	if asJSON {
		report := struct {
			Result string   `json:"result,omitempty"`
			Error  string   `json:"error,omitempty"`
			Stats  vm.Stats `json:"stats"`
		}{Stats: stats}
		if runErr != nil {
			report.Error = runErr.Error()
		} else {
			report.Result = vm.Print(result)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	t := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	if runErr != nil {
		fmt.Fprintf(t, "result\terror: %v\n", runErr)
	} else {
		fmt.Fprintf(t, "result\t%s\n", vm.Print(result))
	}

	fmt.Fprintf(t, "live objects\t%d\n", stats.LiveObjects)
	fmt.Fprintf(t, "total allocated\t%d bytes\n", stats.TotalAllocated)
	fmt.Fprintf(t, "next gc threshold\t%d bytes\n", stats.NextGC)
	fmt.Fprintf(t, "last sweep freed\t%d bytes\n", stats.LastSwept)
	return t.Flush()
}
