package mcp443x

import (
	"digipot-go/errcode"
	"digipot-go/x/conv"
)

// Operation is one of the commands the encoder can frame.
type Operation uint8

const (
	OpInvalid Operation = iota
	Increment
	Decrement
	WriteWiper
	WriteRegister
	ReadWiper
	ReadRegister
)

var opNames = [...]string{
	OpInvalid:     "invalid",
	Increment:     "increment",
	Decrement:     "decrement",
	WriteWiper:    "write_wiper",
	WriteRegister: "write_register",
	ReadWiper:     "read_wiper",
	ReadRegister:  "read_register",
}

func (op Operation) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "operation(" + conv.Dec(op) + ")"
}

// ParseOperation maps a name produced by String back to an Operation.
func ParseOperation(s string) (Operation, error) {
	for i, n := range opNames {
		if i != int(OpInvalid) && n == s {
			return Operation(i), nil
		}
	}
	return OpInvalid, errcode.New(errcode.InvalidOperation, "parse_operation", s)
}

func (op Operation) valid() bool { return op >= Increment && op <= ReadRegister }

// Opcode returns the 2-bit command field.
func (op Operation) Opcode() (uint8, error) {
	switch op {
	case Increment:
		return opcodeIncrement, nil
	case Decrement:
		return opcodeDecrement, nil
	case WriteWiper, WriteRegister:
		return opcodeWrite, nil
	case ReadWiper, ReadRegister:
		return opcodeRead, nil
	default:
		return 0, errcode.New(errcode.InvalidOperation, "opcode", op.String())
	}
}

// IsWrite reports whether the operation carries a data byte.
func (op Operation) IsWrite() bool { return op == WriteWiper || op == WriteRegister }

// IsRead reports whether the operation is followed by a read restart.
func (op Operation) IsRead() bool { return op == ReadWiper || op == ReadRegister }

// OnRegister reports whether the index names a TCON register rather than a wiper.
func (op Operation) OnRegister() bool { return op == WriteRegister || op == ReadRegister }

// EncodeCommand returns D3 D2 D1 D0 C1 C0 0 0 for op at memAddr.
func EncodeCommand(op Operation, memAddr uint8) (byte, error) {
	opc, err := op.Opcode()
	if err != nil {
		return 0, err
	}
	if memAddr > memAddrMax {
		return 0, errcode.New(errcode.OutOfRange, "encode_command", "memory address "+conv.Dec(memAddr))
	}
	return memAddr<<4 | opc<<2, nil
}

// DecodeCommand splits a command byte into memory address and opcode.
func DecodeCommand(b byte) (memAddr, opcode uint8, err error) {
	if b&cmdReservedMask != 0 {
		return 0, 0, errcode.New(errcode.InvalidFrame, "decode_command", "reserved bits set")
	}
	return b >> 4, (b >> 2) & 0x03, nil
}

// resolve picks the wiper or control table for op.
func resolve(op Operation, index uint8) (uint8, error) {
	if op.OnRegister() {
		return ResolveControlAddress(Register(index))
	}
	return ResolveWiperAddress(Channel(index))
}
