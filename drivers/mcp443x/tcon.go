package mcp443x

import (
	"digipot-go/errcode"
	"digipot-go/x/conv"
)

// TCON nibble bits for one wiper (high nibble for odd channels).
const (
	tconB  = 1 << 0
	tconW  = 1 << 1
	tconA  = 1 << 2
	tconHW = 1 << 3

	// Power-on value of both TCON registers: every terminal connected.
	TCONDefault = 0xFF
)

// Terminals is the connection state of one resistor network.
// HW false forces the network into hardware shutdown.
type Terminals struct {
	HW bool
	A  bool
	W  bool
	B  bool
}

// AllConnected is the power-on state.
var AllConnected = Terminals{HW: true, A: true, W: true, B: true}

// Nibble packs t as HW A W B.
func (t Terminals) Nibble() uint8 {
	var n uint8
	if t.HW {
		n |= tconHW
	}
	if t.A {
		n |= tconA
	}
	if t.W {
		n |= tconW
	}
	if t.B {
		n |= tconB
	}
	return n
}

// TerminalsFromNibble unpacks the low four bits of n.
func TerminalsFromNibble(n uint8) Terminals {
	return Terminals{
		HW: n&tconHW != 0,
		A:  n&tconA != 0,
		W:  n&tconW != 0,
		B:  n&tconB != 0,
	}
}

// EncodeTerminals builds a TCON data byte from the states of its two wipers.
func EncodeTerminals(lo, hi Terminals) byte { return hi.Nibble()<<4 | lo.Nibble() }

// DecodeTerminals splits a TCON data byte.
func DecodeTerminals(b byte) (lo, hi Terminals) {
	return TerminalsFromNibble(b & 0x0F), TerminalsFromNibble(b >> 4)
}

// TerminalRegister returns the register slot holding ch and whether ch lives
// in its high nibble.
func TerminalRegister(ch Channel) (Register, bool, error) {
	if ch > maxIndex {
		return 0, false, errcode.New(errcode.OutOfRange, "terminal_register", "channel "+conv.Dec(ch))
	}
	return Register(ch), ch&1 == 1, nil
}

// MergeTerminals replaces the nibble of ch inside the TCON byte cur.
func MergeTerminals(cur byte, ch Channel, t Terminals) (byte, error) {
	_, high, err := TerminalRegister(ch)
	if err != nil {
		return 0, err
	}
	if high {
		return cur&0x0F | t.Nibble()<<4, nil
	}
	return cur&0xF0 | t.Nibble(), nil
}

// ChannelTerminals extracts the state of ch from a TCON byte.
func ChannelTerminals(b byte, ch Channel) (Terminals, error) {
	_, high, err := TerminalRegister(ch)
	if err != nil {
		return Terminals{}, err
	}
	lo, hi := DecodeTerminals(b)
	if high {
		return hi, nil
	}
	return lo, nil
}
