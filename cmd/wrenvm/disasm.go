package main

import (
	"github.com/fermian/wren/internal/bytecode"
	"github.com/spf13/cobra"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file.wrenb>",
		Short: "disassemble a compiled bytecode container",
		Args:  cobra.ExactArgs(1),
		RunE:  runDisasm,
	}
}

func runDisasm(cmd *cobra.Command, args []string) error {
	m, err := newVM()
	if err != nil {
		return err
	}
	fn, err := loadFile(m, args[0])
	if err != nil {
		return err
	}
	bytecode.Disassemble(cmd.OutOrStdout(), fn)
	return nil
}
