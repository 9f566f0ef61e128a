package vm

import (
	"fmt"

	"github.com/fermian/wren/internal/value"
)

// Print renders a Value for diagnostic output, exactly as spec.md §4.A
// specifies: the two bool singletons, null, %g-formatted numbers,
// "novalue" (which should never actually be seen — see vm.go's GetClass),
// a string's raw contents, and every other object as "[kind ADDR]".
func Print(v value.Value) string {
	switch v.Kind() {
	case value.KindFalse:
		return "false"
	case value.KindTrue:
		return "true"
	case value.KindNull:
		return "null"
	case value.KindNum:
		n, _ := v.AsNum()
		return fmt.Sprintf("%g", n)
	case value.KindNoValue:
		return "novalue"
	case value.KindObj:
		o, _ := v.AsObj()
		if s, ok := o.(*String); ok {
			return s.String()
		}
		hdr := value.HeaderOf(o)
		return fmt.Sprintf("[%s %p]", hdr.Kind(), o)
	default:
		return "<?>"
	}
}
