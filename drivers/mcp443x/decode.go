package mcp443x

import (
	"digipot-go/errcode"
	"digipot-go/x/conv"
)

// Decoded is the field-level view of a frame.
type Decoded struct {
	Selector  Selector
	Direction Direction
	Kind      Kind
	Op        Operation // OpInvalid for a probe
	MemAddr   uint8
	Index     uint8 // channel, or the lower register slot of a TCON address
	Data      byte
	HasData   bool
}

// memIndex maps a memory address back to its channel or TCON register slot.
func memIndex(mem uint8) (index uint8, register bool, ok bool) {
	for i, a := range wiperAddr {
		if a == mem {
			return uint8(i), false, true
		}
	}
	switch mem {
	case memTCON0:
		return 0, true, true
	case memTCON1:
		return 2, true, true
	}
	return 0, false, false
}

// DecodeFrame parses a 1–3 byte frame produced by BuildFrame or ProbeFrame.
func DecodeFrame(p []byte) (Decoded, error) {
	const op = "decode_frame"
	if len(p) < int(KindProbe) || len(p) > int(KindWrite) {
		return Decoded{}, errcode.New(errcode.InvalidFrame, op, "length "+conv.Dec(len(p)))
	}
	sel, dir, err := DecodeAddressByte(p[0])
	if err != nil {
		return Decoded{}, err
	}
	d := Decoded{Selector: sel, Direction: dir, Kind: Kind(len(p))}
	if d.Kind == KindProbe {
		if dir != Read {
			return Decoded{}, errcode.New(errcode.InvalidFrame, op, "probe without read bit")
		}
		return d, nil
	}
	if dir != Write {
		return Decoded{}, errcode.New(errcode.InvalidFrame, op, "command frame with read bit")
	}

	mem, opc, err := DecodeCommand(p[1])
	if err != nil {
		return Decoded{}, err
	}
	idx, onReg, ok := memIndex(mem)
	if !ok {
		return Decoded{}, errcode.New(errcode.InvalidFrame, op, "unsupported memory address "+conv.Hex(mem))
	}
	d.MemAddr, d.Index = mem, idx

	switch opc {
	case opcodeWrite:
		if d.Kind != KindWrite {
			return Decoded{}, errcode.New(errcode.InvalidFrame, op, "write without data byte")
		}
		d.Op = WriteWiper
		if onReg {
			d.Op = WriteRegister
		}
		d.Data, d.HasData = p[2], true
	case opcodeRead:
		d.Op = ReadWiper
		if onReg {
			d.Op = ReadRegister
		}
	case opcodeIncrement, opcodeDecrement:
		if onReg {
			return Decoded{}, errcode.New(errcode.InvalidFrame, op, "increment/decrement on a TCON register")
		}
		d.Op = Increment
		if opc == opcodeDecrement {
			d.Op = Decrement
		}
	}
	if d.Kind == KindWrite && !d.HasData {
		return Decoded{}, errcode.New(errcode.InvalidFrame, op, "data byte after "+d.Op.String())
	}
	return d, nil
}

// Frame rebuilds the frame described by d.
func (d Decoded) Frame() (Frame, error) {
	if d.Kind == KindProbe {
		return ProbeFrame(d.Selector)
	}
	data := NoData
	if d.HasData {
		data = Value(d.Data)
	}
	return BuildFrame(d.Selector, d.Op, d.Index, data)
}
