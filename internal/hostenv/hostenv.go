// Package hostenv holds the handful of concerns that belong to the process
// hosting the VM rather than the VM itself: sizing the fiber's stack from
// the host's actual resource limits, and giving the CLI a clean way to
// cancel on Ctrl-C. Grounded on the teacher repo's own use of
// golang.org/x/sys/unix (gocore_test.go's adjustCoreRlimit raises
// RLIMIT_CORE via unix.Getrlimit/unix.Setrlimit before generating a core
// file) and golang.org/x/debug's process-level thinking in general.
package hostenv

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// defaultStackCap and defaultFrameCap are used whenever the host's
// RLIMIT_STACK can't be read (e.g. platforms without getrlimit), matching
// internal/vm's own DefaultStackCapacity/DefaultFrameCapacity.
const (
	defaultStackCap = 4096
	defaultFrameCap = 256

	bytesPerStackSlot = 64 // a conservative upper bound per value.Value stack slot
	bytesPerFrameSlot = 96 // upper bound per vm.Frame
)

// StackBudget derives the fiber's stack and frame capacities from the
// host's current RLIMIT_STACK, so a script run under a constrained host
// (e.g. "ulimit -s 512") gets a correspondingly smaller fiber instead of
// silently reusing a capacity sized for a generous default. Half the
// budget goes to the value stack, half to the frame stack.
func StackBudget() (stackCapacity, frameCapacity int) {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &rlim); err != nil {
		return defaultStackCap, defaultFrameCap
	}
	limit := rlim.Cur
	if limit == unix.RLIM_INFINITY || limit == 0 {
		return defaultStackCap, defaultFrameCap
	}

	half := limit / 2
	stackCapacity = clampCapacity(int(half/bytesPerStackSlot), defaultStackCap)
	frameCapacity = clampCapacity(int(half/bytesPerFrameSlot), defaultFrameCap)
	return stackCapacity, frameCapacity
}

func clampCapacity(n, fallback int) int {
	if n < 64 {
		return fallback
	}
	if n > 1<<20 {
		return 1 << 20
	}
	return n
}

// Interruptible runs fn, handing it a channel that receives the process's
// SIGINT (os.Interrupt) signals while fn runs; what to do on a signal is up
// to fn. It is meant for the CLI's top-level loop — the
// interpreter's own dispatch loop (internal/vm) has no notion of
// cancellation, matching spec.md's non-goal of preemption mid-instruction.
func Interruptible(fn func(sigCh <-chan os.Signal)) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	fn(sigCh)
}
