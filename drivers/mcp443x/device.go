package mcp443x

import (
	"digipot-go/errcode"
	"digipot-go/x/conv"
	"digipot-go/x/mathx"

	"tinygo.org/x/drivers"
)

// Tap counts of the family: 7-bit parts (MCP443x) and 8-bit parts (MCP445x).
const (
	Steps7Bit = 129
	Steps8Bit = 257
)

// Config describes one part on the bus.
type Config struct {
	Selector Selector // A1:A0 strap
	Steps    uint16   // 129 or 257; 0 means 257
}

// DefaultConfig is an 8-bit part with both address pins low.
func DefaultConfig() Config { return Config{Steps: Steps8Bit} }

// Validate checks the selector and tap count.
func (c Config) Validate() error {
	if c.Selector > maxIndex {
		return errcode.New(errcode.OutOfRange, "config", "selector "+conv.Dec(c.Selector))
	}
	switch c.Steps {
	case 0, Steps7Bit, Steps8Bit:
		return nil
	}
	return errcode.New(errcode.InvalidParams, "config", "steps must be 129 or 257")
}

// Device drives one MCP443x/MCP445x through a drivers.I2C transport.
// The address byte of each frame travels as the bus address of the Tx.
type Device struct {
	i2c   drivers.I2C
	sel   Selector
	addr  uint16
	steps uint16
	err   error // config rejected by New, cleared by Configure

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [2]byte
}

// New constructs a Device. An invalid cfg is kept as the error of every
// transaction until Configure succeeds.
func New(i2c drivers.I2C, cfg Config) *Device {
	d := &Device{i2c: i2c}
	if d.err = cfg.Validate(); d.err != nil {
		cfg = DefaultConfig()
	}
	d.apply(cfg)
	return d
}

// Configure validates and applies cfg.
func (d *Device) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d.err = nil
	d.apply(cfg)
	return nil
}

// Err reports the config error held since New, if any.
func (d *Device) Err() error { return d.err }

func (d *Device) apply(cfg Config) {
	d.sel = cfg.Selector
	d.addr = AddressBase | uint16(cfg.Selector&0x03)
	d.steps = cfg.Steps
	if d.steps == 0 {
		d.steps = Steps8Bit
	}
}

func (d *Device) Selector() Selector { return d.sel }
func (d *Device) Address() uint16    { return d.addr }
func (d *Device) Steps() uint16      { return d.steps }

// FullScale is the wiper value that connects W to A.
func (d *Device) FullScale() uint16 { return d.steps - 1 }

// MaxWrite is the largest value a single data byte can carry.
func (d *Device) MaxWrite() uint8 {
	if fs := d.FullScale(); fs < 0xFF {
		return uint8(fs)
	}
	return 0xFF
}

// ---------------- Wiper control ----------------

func (d *Device) Increment(ch Channel) error {
	return d.send(Increment, uint8(ch), NoData, nil)
}

func (d *Device) Decrement(ch Channel) error {
	return d.send(Decrement, uint8(ch), NoData, nil)
}

// SetWiper writes v to the volatile wiper of ch.
func (d *Device) SetWiper(ch Channel, v uint8) error {
	if v > d.MaxWrite() {
		return errcode.New(errcode.OutOfRange, "set_wiper", "value "+conv.Dec(v))
	}
	return d.send(WriteWiper, uint8(ch), Value(v), nil)
}

// Wiper reads the 9-bit wiper value of ch.
func (d *Device) Wiper(ch Channel) (uint16, error) {
	if err := d.send(ReadWiper, uint8(ch), NoData, d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0]&0x01)<<8 | uint16(d.r[1]), nil
}

// SetPercent positions the wiper of ch at pct (0..100) of the writable range.
func (d *Device) SetPercent(ch Channel, pct uint8) error {
	v, ok := mathx.Rescale(uint16(pct), 100, uint16(d.MaxWrite()))
	if !ok {
		return errcode.New(errcode.OutOfRange, "set_percent", "percent "+conv.Dec(pct))
	}
	return d.SetWiper(ch, uint8(v))
}

// Percent reads the wiper of ch as a share of full scale.
func (d *Device) Percent(ch Channel) (uint8, error) {
	v, err := d.Wiper(ch)
	if err != nil {
		return 0, err
	}
	pct, ok := mathx.Rescale(v, d.FullScale(), 100)
	if !ok {
		return 0, errcode.New(errcode.OutOfRange, "percent", "wiper "+conv.Dec(v))
	}
	return uint8(pct), nil
}

// ---------------- Terminal control (TCON) ----------------

// Terminals returns the connection state of ch.
func (d *Device) Terminals(ch Channel) (Terminals, error) {
	reg, _, err := TerminalRegister(ch)
	if err != nil {
		return Terminals{}, err
	}
	b, err := d.readRegister(reg)
	if err != nil {
		return Terminals{}, err
	}
	return ChannelTerminals(b, ch)
}

// SetTerminals updates the nibble of ch, keeping the other wiper of the same
// TCON register unchanged.
func (d *Device) SetTerminals(ch Channel, t Terminals) error {
	reg, _, err := TerminalRegister(ch)
	if err != nil {
		return err
	}
	cur, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	next, err := MergeTerminals(cur, ch, t)
	if err != nil {
		return err
	}
	if next == cur {
		return nil
	}
	return d.send(WriteRegister, uint8(reg), Value(next), nil)
}

// Shutdown disconnects (on=true) or reconnects every terminal of ch.
func (d *Device) Shutdown(ch Channel, on bool) error {
	t := AllConnected
	if on {
		t = Terminals{}
	}
	return d.SetTerminals(ch, t)
}

// ---------------- Presence ----------------

// Probe issues the bare read request and reports whether the part answered.
func (d *Device) Probe() error {
	if d.err != nil {
		return d.err
	}
	f, err := ProbeFrame(d.sel)
	if err != nil {
		return err
	}
	return d.i2c.Tx(uint16(f.Address()>>1), nil, d.r[:1])
}

// ---------------- Low-level I2C ----------------

func (d *Device) readRegister(reg Register) (byte, error) {
	if err := d.send(ReadRegister, uint8(reg), NoData, d.r[:2]); err != nil {
		return 0, err
	}
	return d.r[1], nil
}

// send frames op and performs one Tx. A non-nil r turns the Tx into a
// write-restart-read combined transaction.
func (d *Device) send(op Operation, index uint8, data Data, r []byte) error {
	if d.err != nil {
		return d.err
	}
	f, err := BuildFrame(d.sel, op, index, data)
	if err != nil {
		return err
	}
	n := copy(d.w[:], f.b[1:f.Len()])
	return d.i2c.Tx(uint16(f.Address()>>1), d.w[:n], r)
}
