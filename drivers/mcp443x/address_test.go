package mcp443x

import (
	"errors"
	"testing"

	"digipot-go/errcode"
)

func TestResolveWiperAddress(t *testing.T) {
	want := []uint8{0x0, 0x1, 0x6, 0x7}
	for ch, w := range want {
		got, err := ResolveWiperAddress(Channel(ch))
		if err != nil {
			t.Fatalf("channel %d: %v", ch, err)
		}
		if got != w {
			t.Fatalf("channel %d: got 0x%X want 0x%X", ch, got, w)
		}
		again, _ := ResolveWiperAddress(Channel(ch))
		if again != got {
			t.Fatalf("channel %d: second call returned 0x%X", ch, again)
		}
	}
}

func TestResolveControlAddressAliases(t *testing.T) {
	want := []uint8{0x4, 0x4, 0xA, 0xA}
	for r, w := range want {
		got, err := ResolveControlAddress(Register(r))
		if err != nil || got != w {
			t.Fatalf("register %d: got 0x%X,%v want 0x%X", r, got, err, w)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	for _, v := range []uint8{4, 5, 0x10, 0xFF} {
		if _, err := ResolveWiperAddress(Channel(v)); !errors.Is(err, errcode.OutOfRange) {
			t.Fatalf("wiper %d: err=%v, want out_of_range", v, err)
		}
		if _, err := ResolveControlAddress(Register(v)); !errors.Is(err, errcode.OutOfRange) {
			t.Fatalf("register %d: err=%v, want out_of_range", v, err)
		}
	}
}

func TestEncodeAddressByte(t *testing.T) {
	cases := []struct {
		sel  Selector
		dir  Direction
		want byte
	}{
		{0, Write, 0x58},
		{0, Read, 0x59},
		{1, Write, 0x5A},
		{2, Write, 0x5C},
		{2, Read, 0x5D},
		{3, Read, 0x5F},
	}
	for _, c := range cases {
		got, err := EncodeAddressByte(c.sel, c.dir)
		if err != nil || got != c.want {
			t.Fatalf("EncodeAddressByte(%d,%s) = 0x%02X,%v want 0x%02X", c.sel, c.dir, got, err, c.want)
		}
	}
	if _, err := EncodeAddressByte(4, Write); !errors.Is(err, errcode.OutOfRange) {
		t.Fatalf("selector 4: err=%v", err)
	}
	for _, dir := range []Direction{2, 7, 0xFF} {
		if b, err := EncodeAddressByte(0, dir); !errors.Is(err, errcode.InvalidParams) {
			t.Fatalf("direction %d: got 0x%02X,%v want invalid_params", dir, b, err)
		}
	}
}

func TestAddressByteRoundTrip(t *testing.T) {
	for sel := Selector(0); sel <= 3; sel++ {
		for _, dir := range []Direction{Write, Read} {
			b, err := EncodeAddressByte(sel, dir)
			if err != nil {
				t.Fatal(err)
			}
			gs, gd, err := DecodeAddressByte(b)
			if err != nil || gs != sel || gd != dir {
				t.Fatalf("0x%02X decoded to (%d,%s,%v), want (%d,%s)", b, gs, gd, err, sel, dir)
			}
		}
	}
}

func TestDecodeAddressByteRejectsForeignAddress(t *testing.T) {
	for _, b := range []byte{0x00, 0x50, 0x60, 0xD0, 0x48} {
		if _, _, err := DecodeAddressByte(b); !errors.Is(err, errcode.InvalidFrame) {
			t.Fatalf("0x%02X: err=%v, want invalid_frame", b, err)
		}
	}
}

func TestAddress7(t *testing.T) {
	for sel := Selector(0); sel <= 3; sel++ {
		a, err := Address7(sel)
		if err != nil || a != AddressBase+uint16(sel) {
			t.Fatalf("Address7(%d) = 0x%02X,%v", sel, a, err)
		}
	}
}
