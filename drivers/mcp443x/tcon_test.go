package mcp443x

import (
	"errors"
	"testing"

	"digipot-go/errcode"
)

func TestTerminalsNibble(t *testing.T) {
	cases := []struct {
		t    Terminals
		want uint8
	}{
		{AllConnected, 0xF},
		{Terminals{}, 0x0},
		{Terminals{HW: true}, 0x8},
		{Terminals{A: true}, 0x4},
		{Terminals{W: true}, 0x2},
		{Terminals{B: true}, 0x1},
		{Terminals{HW: true, W: true, B: true}, 0xB},
	}
	for _, c := range cases {
		if got := c.t.Nibble(); got != c.want {
			t.Fatalf("%+v: nibble 0x%X want 0x%X", c.t, got, c.want)
		}
		if back := TerminalsFromNibble(c.want); back != c.t {
			t.Fatalf("0x%X: decoded %+v want %+v", c.want, back, c.t)
		}
	}
}

func TestEncodeDecodeTerminals(t *testing.T) {
	lo := Terminals{HW: true, A: true}
	hi := Terminals{W: true, B: true}
	b := EncodeTerminals(lo, hi)
	if b != 0x3C {
		t.Fatalf("EncodeTerminals = 0x%02X", b)
	}
	gl, gh := DecodeTerminals(b)
	if gl != lo || gh != hi {
		t.Fatalf("DecodeTerminals(0x%02X) = %+v %+v", b, gl, gh)
	}
	if EncodeTerminals(AllConnected, AllConnected) != TCONDefault {
		t.Fatal("all-connected does not match power-on value")
	}
}

func TestTerminalRegister(t *testing.T) {
	want := []struct {
		reg  Register
		high bool
		mem  uint8
	}{{0, false, 0x4}, {1, true, 0x4}, {2, false, 0xA}, {3, true, 0xA}}
	for ch, w := range want {
		reg, high, err := TerminalRegister(Channel(ch))
		if err != nil || reg != w.reg || high != w.high {
			t.Fatalf("ch%d: %d,%v,%v", ch, reg, high, err)
		}
		if mem, _ := ResolveControlAddress(reg); mem != w.mem {
			t.Fatalf("ch%d: TCON address 0x%X", ch, mem)
		}
	}
	if _, _, err := TerminalRegister(4); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("ch4: err=%v", err)
	}
}

func TestMergeTerminals(t *testing.T) {
	got, err := MergeTerminals(0xFF, 1, Terminals{})
	if err != nil || got != 0x0F {
		t.Fatalf("merge high = 0x%02X,%v", got, err)
	}
	got, err = MergeTerminals(0xFF, 2, Terminals{HW: true})
	if err != nil || got != 0xF8 {
		t.Fatalf("merge low = 0x%02X,%v", got, err)
	}
	ts, err := ChannelTerminals(got, 2)
	if err != nil || ts != (Terminals{HW: true}) {
		t.Fatalf("ChannelTerminals = %+v,%v", ts, err)
	}
	if _, err := MergeTerminals(0, 9, AllConnected); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("ch9: err=%v", err)
	}
}
