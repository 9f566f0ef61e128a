package main

import (
	"fmt"
	"os"

	"github.com/fermian/wren/internal/bytecode"
	"github.com/fermian/wren/internal/corelib"
	"github.com/fermian/wren/internal/hostenv"
	"github.com/fermian/wren/internal/vm"
)

// newVM builds a VM sized from the host's stack budget (internal/hostenv)
// and installs the core library.
func newVM() (*vm.VM, error) {
	opts := vm.DefaultOptions()
	opts.StackCapacity, opts.FrameCapacity = hostenv.StackBudget()
	m := vm.New(opts)
	if err := corelib.Install(m); err != nil {
		return nil, fmt.Errorf("installing core library: %w", err)
	}
	return m, nil
}

// loadFile reads and decodes a bytecode container from path against m.
func loadFile(m *vm.VM, path string) (*vm.Fn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fn, err := bytecode.Decode(m, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return fn, nil
}
