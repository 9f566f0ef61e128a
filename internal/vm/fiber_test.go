package vm

import (
	"testing"

	"github.com/fermian/wren/internal/value"
)

func TestFiberPushOverflowFaults(t *testing.T) {
	f := NewFiber(2, 4)
	f.push(value.Num(1))
	f.push(value.Num(2))

	defer func() {
		r := recover()
		fault, ok := r.(*Fault)
		if !ok {
			t.Fatalf("pushing past capacity should raise a Fault, got %v", r)
		}
		if fault.Kind != StackOverflow {
			t.Fatalf("Fault.Kind = %s, want %s", fault.Kind, StackOverflow)
		}
	}()
	f.push(value.Num(3))
}

func TestFiberCallOverlaysArgsWithoutMoving(t *testing.T) {
	f := NewFiber(16, 4)
	fn := &Fn{}
	f.push(value.Num(10)) // receiver
	f.push(value.Num(20)) // arg

	f.call(fn, 2)

	frame := f.currentFrame()
	if frame.stackStart != 0 {
		t.Fatalf("stackStart = %d, want 0 (args were not moved)", frame.stackStart)
	}
	if f.stack[0].Kind() != value.KindNum {
		t.Fatalf("receiver slot was disturbed by call()")
	}
}
