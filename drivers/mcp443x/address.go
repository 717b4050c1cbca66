package mcp443x

import (
	"digipot-go/errcode"
	"digipot-go/x/conv"
	"digipot-go/x/mathx"
)

// Channel identifies one of the four wipers.
type Channel uint8

// Register identifies a TCON register slot. Slots 0/1 and 2/3 share one
// physical register each (TCON0 and TCON1).
type Register uint8

// Selector is the value strapped on the A1:A0 pins.
type Selector uint8

// Direction is the R/W bit of the address byte.
type Direction uint8

const (
	Write Direction = iota
	Read
)

func (d Direction) String() string {
	if d == Read {
		return "read"
	}
	return "write"
}

// ResolveWiperAddress returns the memory address nibble of a wiper.
func ResolveWiperAddress(ch Channel) (uint8, error) {
	if !mathx.Between(ch, 0, maxIndex) {
		return 0, errcode.New(errcode.OutOfRange, "resolve_wiper", "channel "+conv.Dec(ch))
	}
	return wiperAddr[ch], nil
}

// ResolveControlAddress returns the memory address nibble of a TCON register.
func ResolveControlAddress(r Register) (uint8, error) {
	if !mathx.Between(r, 0, maxIndex) {
		return 0, errcode.New(errcode.OutOfRange, "resolve_control", "register "+conv.Dec(r))
	}
	return controlAddr[r], nil
}

// EncodeAddressByte returns the first byte of a transaction: 0101_1 A1 A0 R/W.
func EncodeAddressByte(sel Selector, dir Direction) (byte, error) {
	if !mathx.Between(sel, 0, maxIndex) {
		return 0, errcode.New(errcode.OutOfRange, "encode_address", "selector "+conv.Dec(sel))
	}
	if dir > Read {
		return 0, errcode.New(errcode.InvalidParams, "encode_address", "direction "+conv.Dec(uint8(dir)))
	}
	return byte(addrByteBase) | byte(sel)<<1 | byte(dir), nil
}

// DecodeAddressByte recovers the selector and direction from an address byte.
func DecodeAddressByte(b byte) (Selector, Direction, error) {
	if b&addrByteMask != addrByteBase {
		return 0, 0, errcode.New(errcode.InvalidFrame, "decode_address", "not a potentiometer address: "+conv.Hex(b))
	}
	return Selector((b >> 1) & 0x03), Direction(b & 0x01), nil
}

// Address7 returns the 7-bit bus address for a selector, as used by drivers.I2C.
func Address7(sel Selector) (uint16, error) {
	b, err := EncodeAddressByte(sel, Write)
	if err != nil {
		return 0, err
	}
	return uint16(b >> 1), nil
}
