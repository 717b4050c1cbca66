package mcp443x

import (
	"encoding/hex"

	"digipot-go/errcode"
)

// Kind tags a Frame with its shape; the value is also its length in bytes.
type Kind uint8

const (
	KindProbe   Kind = 1 // address byte with the read bit
	KindCommand Kind = 2 // address + command
	KindWrite   Kind = 3 // address + command + data
)

func (k Kind) String() string {
	switch k {
	case KindProbe:
		return "probe"
	case KindCommand:
		return "command"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Frame is an immutable 1–3 byte bus frame. The zero Frame is empty.
type Frame struct {
	kind Kind
	b    [3]byte
}

// Data is an optional data byte for BuildFrame.
type Data struct {
	V     byte
	Valid bool
}

// Value wraps v as a present data byte.
func Value(v byte) Data { return Data{V: v, Valid: true} }

// NoData marks the data phase as absent.
var NoData = Data{}

func (f Frame) Kind() Kind { return f.kind }
func (f Frame) Len() int   { return int(f.kind) }

// Bytes returns a fresh copy of the frame bytes.
func (f Frame) Bytes() []byte {
	return f.AppendTo(make([]byte, 0, f.Len()))
}

// AppendTo appends the frame bytes to dst.
func (f Frame) AppendTo(dst []byte) []byte { return append(dst, f.b[:f.Len()]...) }

func (f Frame) Address() byte { return f.b[0] }

func (f Frame) Command() (byte, bool) { return f.b[1], f.kind >= KindCommand }

func (f Frame) Data() (byte, bool) { return f.b[2], f.kind == KindWrite }

// Payload returns the bytes after the address byte, i.e. what a drivers.I2C
// Tx writes once the bus has sent the address.
func (f Frame) Payload() []byte {
	if f.kind < KindCommand {
		return nil
	}
	out := make([]byte, f.Len()-1)
	copy(out, f.b[1:f.Len()])
	return out
}

func (f Frame) String() string { return hex.EncodeToString(f.b[:f.Len()]) }

// BuildFrame composes address, command and optional data bytes for op.
// index is a Channel for wiper operations and a Register for TCON operations.
func BuildFrame(sel Selector, op Operation, index uint8, data Data) (Frame, error) {
	if !op.valid() {
		return Frame{}, errcode.New(errcode.InvalidOperation, "build_frame", op.String())
	}
	if op.IsWrite() != data.Valid {
		msg := "data byte not allowed for " + op.String()
		if op.IsWrite() {
			msg = "data byte required for " + op.String()
		}
		return Frame{}, errcode.New(errcode.InvalidOperation, "build_frame", msg)
	}

	addr, err := EncodeAddressByte(sel, Write)
	if err != nil {
		return Frame{}, err
	}
	mem, err := resolve(op, index)
	if err != nil {
		return Frame{}, err
	}
	cmd, err := EncodeCommand(op, mem)
	if err != nil {
		return Frame{}, err
	}

	f := Frame{kind: KindCommand, b: [3]byte{addr, cmd}}
	if data.Valid {
		f.kind = KindWrite
		f.b[2] = data.V
	}
	return f, nil
}

// ProbeFrame returns the bare read request: a single address byte with R/W set.
func ProbeFrame(sel Selector) (Frame, error) {
	addr, err := EncodeAddressByte(sel, Read)
	if err != nil {
		return Frame{}, err
	}
	return Frame{kind: KindProbe, b: [3]byte{addr}}, nil
}

// ReadRestart is the address byte a transport sends after the repeated start
// that follows a ReadWiper or ReadRegister frame.
func ReadRestart(sel Selector) (byte, error) { return EncodeAddressByte(sel, Read) }
