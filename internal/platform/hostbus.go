package platform

import (
	"sync"

	"digipot-go/drivers/mcp443x"
	"digipot-go/errcode"
	"digipot-go/x/conv"

	"github.com/rs/zerolog"
)

// Tx is one recorded transaction on a HostBus.
type Tx struct {
	Addr uint16
	W    []byte
	R    []byte
	Err  error
}

// tconReset is the power-on TCON value: GCEN set, all terminals connected.
const tconReset = 0x100 | uint16(mcp443x.TCONDefault)

type hostPart struct {
	full  uint16
	wiper [4]uint16
	tcon  [2]uint16 // 9-bit, D8 is GCEN
}

// HostBus implements tinygo drivers.I2C by emulating MCP443x/MCP445x parts
// in memory. Unknown addresses NACK with errcode.NoDevice.
type HostBus struct {
	mu    sync.Mutex
	parts map[uint16]*hostPart
	log   []Tx
	lg    zerolog.Logger
}

// NewHostBus returns an empty bus that logs transactions at debug level.
func NewHostBus(lg zerolog.Logger) *HostBus {
	return &HostBus{parts: map[uint16]*hostPart{}, lg: lg}
}

// AddPart attaches a part strapped to sel with the given tap count.
// Wipers start at mid-scale and both TCON registers at TCONDefault.
func (h *HostBus) AddPart(sel mcp443x.Selector, steps uint16) error {
	cfg := mcp443x.Config{Selector: sel, Steps: steps}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if steps == 0 {
		steps = mcp443x.Steps8Bit
	}
	addr, err := mcp443x.Address7(sel)
	if err != nil {
		return err
	}
	full := steps - 1
	p := &hostPart{full: full, tcon: [2]uint16{tconReset, tconReset}}
	for i := range p.wiper {
		p.wiper[i] = (full + 1) / 2
	}
	h.mu.Lock()
	h.parts[addr] = p
	h.mu.Unlock()
	return nil
}

// Wiper returns the emulated wiper of ch on the part at sel.
func (h *HostBus) Wiper(sel mcp443x.Selector, ch mcp443x.Channel) (uint16, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.part(sel)
	if p == nil || ch > 3 {
		return 0, false
	}
	return p.wiper[ch], true
}

// TCON returns the emulated TCON byte holding ch.
func (h *HostBus) TCON(sel mcp443x.Selector, ch mcp443x.Channel) (byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.part(sel)
	if p == nil || ch > 3 {
		return 0, false
	}
	return byte(p.tcon[ch/2]), true
}

// Log returns a copy of every transaction seen so far.
func (h *HostBus) Log() []Tx {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Tx(nil), h.log...)
}

func (h *HostBus) part(sel mcp443x.Selector) *hostPart {
	addr, err := mcp443x.Address7(sel)
	if err != nil {
		return nil
	}
	return h.parts[addr]
}

// Tx rebuilds the frame from the bus address and w, then applies it.
func (h *HostBus) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.apply(addr, w, r)
	h.log = append(h.log, Tx{
		Addr: addr,
		W:    append([]byte(nil), w...),
		R:    append([]byte(nil), r...),
		Err:  err,
	})
	ev := h.lg.Debug()
	if err != nil {
		ev = h.lg.Warn().Err(err)
	}
	ev.Str("addr", conv.Hex(addr)).
		Hex("w", w).Hex("r", r).Msg("host i2c tx")
	return err
}

func (h *HostBus) apply(addr uint16, w, r []byte) error {
	const op = "host_tx"
	p, ok := h.parts[addr]
	if !ok {
		return errcode.New(errcode.NoDevice, op, "address "+conv.Hex(addr))
	}

	frame := make([]byte, 0, 3)
	if len(w) == 0 {
		frame = append(frame, byte(addr<<1)|1)
	} else {
		frame = append(frame, byte(addr<<1))
		frame = append(frame, w...)
	}
	d, err := mcp443x.DecodeFrame(frame)
	if err != nil {
		return err
	}

	switch d.Op {
	case mcp443x.OpInvalid: // probe
		clear(r)
	case mcp443x.Increment:
		if p.wiper[d.Index] < p.full {
			p.wiper[d.Index]++
		}
	case mcp443x.Decrement:
		if p.wiper[d.Index] > 0 {
			p.wiper[d.Index]--
		}
	case mcp443x.WriteWiper:
		p.wiper[d.Index] = min(uint16(d.Data), p.full)
	case mcp443x.WriteRegister:
		// A data byte carries D7..D0 only; D8 is written as 0.
		p.tcon[d.Index/2] = uint16(d.Data)
	case mcp443x.ReadWiper, mcp443x.ReadRegister:
		if len(r) < 2 {
			return errcode.New(errcode.InvalidFrame, op, "read needs a 2-byte receive buffer")
		}
		v := p.tcon[d.Index/2]
		if d.Op == mcp443x.ReadWiper {
			v = p.wiper[d.Index]
		}
		r[0], r[1] = byte(v>>8), byte(v)
	}
	return nil
}
