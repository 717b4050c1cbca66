package mcp443x

import (
	"bytes"
	"errors"
	"testing"

	"digipot-go/errcode"
)

type txRec struct {
	addr uint16
	w    []byte
	rn   int
}

// fakeI2C records each Tx and answers reads from a canned reply.
type fakeI2C struct {
	txs   []txRec
	reply []byte
	err   error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.txs = append(f.txs, txRec{addr: addr, w: append([]byte(nil), w...), rn: len(r)})
	if f.err != nil {
		return f.err
	}
	copy(r, f.reply)
	return nil
}

func (f *fakeI2C) last(t *testing.T) txRec {
	t.Helper()
	if len(f.txs) == 0 {
		t.Fatal("no transaction recorded")
	}
	return f.txs[len(f.txs)-1]
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (Config{Selector: 4}).Validate(); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("selector 4: err=%v", err)
	}
	if err := (Config{Steps: 100}).Validate(); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("steps 100: err=%v", err)
	}
}

func TestDeviceWriteFrames(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, Config{Selector: 2, Steps: Steps8Bit})
	if d.Address() != 0x2E {
		t.Fatalf("address = 0x%02X", d.Address())
	}

	steps := []struct {
		name string
		do   func() error
		w    []byte
	}{
		{"increment", func() error { return d.Increment(1) }, []byte{0x14}},
		{"decrement", func() error { return d.Decrement(3) }, []byte{0x78}},
		{"set wiper", func() error { return d.SetWiper(3, 0x7F) }, []byte{0x70, 0x7F}},
		{"set percent", func() error { return d.SetPercent(0, 50) }, []byte{0x00, 0x80}},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		tx := bus.last(t)
		if tx.addr != 0x2E || !bytes.Equal(tx.w, s.w) || tx.rn != 0 {
			t.Fatalf("%s: tx = %#v, want w=% X", s.name, tx, s.w)
		}
	}
}

func TestDeviceRejectsBeforeTx(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, Config{Steps: Steps7Bit})
	if err := d.SetWiper(4, 1); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("channel 4: err=%v", err)
	}
	if err := d.SetWiper(0, 129); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("value above 7-bit full scale: err=%v", err)
	}
	if err := d.SetPercent(0, 101); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("percent 101: err=%v", err)
	}
	if len(bus.txs) != 0 {
		t.Fatalf("%d transactions issued for invalid input", len(bus.txs))
	}
}

func TestDeviceWiperRead(t *testing.T) {
	bus := &fakeI2C{reply: []byte{0x01, 0x00}}
	d := New(bus, DefaultConfig())
	v, err := d.Wiper(2)
	if err != nil || v != 256 {
		t.Fatalf("Wiper = %d,%v", v, err)
	}
	tx := bus.last(t)
	if !bytes.Equal(tx.w, []byte{0x6C}) || tx.rn != 2 {
		t.Fatalf("read tx = %#v", tx)
	}
	pct, err := d.Percent(2)
	if err != nil || pct != 100 {
		t.Fatalf("Percent = %d,%v", pct, err)
	}
}

func TestDeviceSetTerminals(t *testing.T) {
	bus := &fakeI2C{reply: []byte{0x01, 0xFF}}
	d := New(bus, DefaultConfig())
	if err := d.SetTerminals(3, Terminals{HW: true, W: true}); err != nil {
		t.Fatal(err)
	}
	if len(bus.txs) != 2 {
		t.Fatalf("want read+write, got %d txs", len(bus.txs))
	}
	if !bytes.Equal(bus.txs[0].w, []byte{0xAC}) || bus.txs[0].rn != 2 {
		t.Fatalf("read tx = %#v", bus.txs[0])
	}
	if !bytes.Equal(bus.txs[1].w, []byte{0xA0, 0xAF}) {
		t.Fatalf("write tx = % X", bus.txs[1].w)
	}

	// Unchanged nibble: no write.
	bus.txs = nil
	if err := d.SetTerminals(0, AllConnected); err != nil {
		t.Fatal(err)
	}
	if len(bus.txs) != 1 {
		t.Fatalf("want read only, got %d txs", len(bus.txs))
	}
}

func TestDeviceTerminalsAndShutdown(t *testing.T) {
	bus := &fakeI2C{reply: []byte{0x01, 0x3C}}
	d := New(bus, DefaultConfig())
	ts, err := d.Terminals(1)
	if err != nil || ts != (Terminals{W: true, B: true}) {
		t.Fatalf("Terminals(1) = %+v,%v", ts, err)
	}
	if err := d.Shutdown(0, true); err != nil {
		t.Fatal(err)
	}
	if w := bus.last(t).w; !bytes.Equal(w, []byte{0x40, 0x30}) {
		t.Fatalf("shutdown write = % X", w)
	}
}

func TestDeviceProbeAndTransportError(t *testing.T) {
	nack := errors.New("nack")
	bus := &fakeI2C{err: nack}
	d := New(bus, Config{Selector: 1})
	if err := d.Probe(); !errors.Is(err, nack) {
		t.Fatalf("Probe err=%v", err)
	}
	tx := bus.last(t)
	if tx.addr != 0x2D || len(tx.w) != 0 || tx.rn != 1 {
		t.Fatalf("probe tx = %#v", tx)
	}
	if _, err := d.Wiper(0); !errors.Is(err, nack) {
		t.Fatalf("Wiper err=%v", err)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	d := New(&fakeI2C{}, DefaultConfig())
	if err := d.Configure(Config{Selector: 5}); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("err=%v", err)
	}
	if err := d.Configure(Config{Selector: 3, Steps: Steps7Bit}); err != nil {
		t.Fatal(err)
	}
	if d.Selector() != 3 || d.FullScale() != 128 || d.MaxWrite() != 128 {
		t.Fatalf("configured sel=%d full=%d max=%d", d.Selector(), d.FullScale(), d.MaxWrite())
	}
}

func TestNewKeepsInvalidConfig(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, Config{Steps: 100})
	if !errors.Is(d.Err(), errcode.InvalidParams) {
		t.Fatalf("Err() = %v", d.Err())
	}
	if err := d.SetWiper(0, 0xFF); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("SetWiper err=%v", err)
	}
	if _, err := d.Percent(0); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("Percent err=%v", err)
	}
	if err := d.Probe(); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("Probe err=%v", err)
	}
	if len(bus.txs) != 0 {
		t.Fatalf("%d transactions sent with a rejected config", len(bus.txs))
	}

	if err := d.Configure(Config{Steps: Steps7Bit}); err != nil {
		t.Fatal(err)
	}
	if d.Err() != nil {
		t.Fatalf("Err() after Configure = %v", d.Err())
	}
	if err := d.SetWiper(0, 0x40); err != nil {
		t.Fatal(err)
	}
	if len(bus.txs) != 1 {
		t.Fatalf("txs = %d", len(bus.txs))
	}
}

func TestNewRejectsSelector(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, Config{Selector: 4})
	if err := d.Increment(0); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("err=%v", err)
	}
	if len(bus.txs) != 0 {
		t.Fatal("transaction sent for selector 4")
	}
}
