package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// Container format (spec.md §4.I): a 4-byte magic, a version byte, then one
// recursively-encoded Fn — the program's top-level function. Nested
// functions (method bodies and anything else stored as an Fn-typed
// constant) are encoded the same way, in place, inside their parent's
// constant pool.
//
//	magic      [4]byte = "WRNB"
//	version    byte    = 1
//	fn         function
//
//	function:
//	  nameLen      uint16
//	  name         [nameLen]byte
//	  numConstants uint16
//	  constants    [numConstants]constant
//	  codeLen      uint32
//	  code         [codeLen]byte
//
//	constant:
//	  tag   byte   (0 = Num, 1 = String, 2 = Fn)
//	  payload
//	    Num:    float64, 8 bytes, little-endian bits
//	    String: uint16 length + bytes
//	    Fn:     nested function, recursively
var magic = [4]byte{'W', 'R', 'N', 'B'}

const version = 1

const (
	tagNum byte = iota
	tagString
	tagFn
)

// Encode serialises fn (and everything reachable through its constant
// pool) into the container format.
func Encode(fn *vm.Fn) []byte {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(version)
	encodeFn(&buf, fn)
	return buf.Bytes()
}

func encodeFn(buf *bytes.Buffer, fn *vm.Fn) {
	writeString(buf, fn.Name)

	binary.Write(buf, binary.LittleEndian, uint16(len(fn.Constants)))
	for _, c := range fn.Constants {
		encodeConstant(buf, c)
	}

	binary.Write(buf, binary.LittleEndian, uint32(len(fn.Code)))
	buf.Write(fn.Code)
}

func encodeConstant(buf *bytes.Buffer, v value.Value) {
	if n, ok := v.AsNum(); ok {
		buf.WriteByte(tagNum)
		binary.Write(buf, binary.LittleEndian, n)
		return
	}
	if o, ok := v.AsObj(); ok {
		switch t := o.(type) {
		case *vm.String:
			buf.WriteByte(tagString)
			writeString(buf, t.String())
			return
		case *vm.Fn:
			buf.WriteByte(tagFn)
			encodeFn(buf, t)
			return
		}
	}
	panic(fmt.Sprintf("bytecode: constant pool entries must be Num, String or Fn, got %s", vm.Print(v)))
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint16(len(s)))
	buf.WriteString(s)
}

// Decode reads a container produced by Encode and allocates the function
// tree it describes on m's heap. Nested functions are allocated before the
// parent Fn that references them as a constant, satisfying the same
// allocation-order rule NewClass observes (see class.go, heap.go).
func Decode(m *vm.VM, data []byte) (*vm.Fn, error) {
	r := bytes.NewReader(data)

	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return nil, fmt.Errorf("bytecode: reading magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("bytecode: bad magic %q, not a wren bytecode file", got)
	}

	v, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("bytecode: reading version: %w", err)
	}
	if v != version {
		return nil, fmt.Errorf("bytecode: unsupported container version %d", v)
	}

	return decodeFn(m, r)
}

func decodeFn(m *vm.VM, r *bytes.Reader) (*vm.Fn, error) {
	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("bytecode: reading function name: %w", err)
	}

	var numConstants uint16
	if err := binary.Read(r, binary.LittleEndian, &numConstants); err != nil {
		return nil, fmt.Errorf("bytecode: reading constant count: %w", err)
	}

	constants := make([]value.Value, numConstants)
	for i := range constants {
		c, err := decodeConstant(m, r)
		if err != nil {
			return nil, fmt.Errorf("bytecode: reading constant %d: %w", i, err)
		}
		constants[i] = c
	}

	var codeLen uint32
	if err := binary.Read(r, binary.LittleEndian, &codeLen); err != nil {
		return nil, fmt.Errorf("bytecode: reading code length: %w", err)
	}
	code := make([]byte, codeLen)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, fmt.Errorf("bytecode: reading code: %w", err)
	}

	return m.Heap.NewFn(m, name, code, constants), nil
}

func decodeConstant(m *vm.VM, r *bytes.Reader) (value.Value, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return value.Value{}, err
	}
	switch tag {
	case tagNum:
		var n float64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return value.Value{}, err
		}
		return value.Num(n), nil
	case tagString:
		s, err := readString(r)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromObj(m.Heap.NewString(m, s)), nil
	case tagFn:
		fn, err := decodeFn(m, r)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromObj(fn), nil
	default:
		return value.Value{}, fmt.Errorf("unknown constant tag %d", tag)
	}
}

func readString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
