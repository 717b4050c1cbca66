// Package mcp443x provides constants for the bus address, memory map and
// command opcodes of the MCP443x/MCP445x quad digital potentiometers.
package mcp443x

const (
	// 7-bit I2C address base (0101_1A1A0b); the selector fills A1:A0.
	AddressBase = 0x2C

	// Fixed high bits of the 8-bit address byte (0101_1xxxb).
	addrByteBase = AddressBase << 1
	addrByteMask = 0xF8

	// --- Memory map (4-bit addresses, volatile) ---
	memWiper0 = 0x0
	memWiper1 = 0x1
	memTCON0  = 0x4 // terminals for wipers 0 and 1
	memWiper2 = 0x6
	memWiper3 = 0x7
	memTCON1  = 0xA // terminals for wipers 2 and 3

	memAddrMax = 0xF

	// --- Command opcodes (bits 3:2 of the command byte) ---
	opcodeWrite     = 0b00
	opcodeIncrement = 0b01
	opcodeDecrement = 0b10
	opcodeRead      = 0b11

	cmdReservedMask = 0x03 // bits 1:0, always zero on the wire

	// Highest valid channel, register and selector index.
	maxIndex = 3
)

// Channel-to-memory and register-to-memory tables. Index only after a bounds check.
var (
	wiperAddr   = [maxIndex + 1]uint8{memWiper0, memWiper1, memWiper2, memWiper3}
	controlAddr = [maxIndex + 1]uint8{memTCON0, memTCON0, memTCON1, memTCON1}
)
