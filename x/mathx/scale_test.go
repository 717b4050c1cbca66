package mathx

import "testing"

func TestBetween(t *testing.T) {
	if !Between(3, 0, 3) || !Between(0, 0, 3) {
		t.Fatal("bounds must be inclusive")
	}
	if Between(4, 0, 3) || Between(-1, 0, 3) {
		t.Fatal("outside values accepted")
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct{ a, b, want uint32 }{
		{10, 4, 3},
		{9, 4, 2},
		{0, 7, 0},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := RoundDiv(c.a, c.b); got != c.want {
			t.Fatalf("RoundDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestRescale(t *testing.T) {
	cases := []struct {
		v, from, to uint16
		want        uint16
		ok          bool
	}{
		{50, 100, 256, 128, true},
		{100, 100, 256, 256, true},
		{0, 100, 128, 0, true},
		{128, 256, 100, 50, true},
		{101, 100, 256, 0, false},
		{1, 0, 256, 0, false},
	}
	for _, c := range cases {
		got, ok := Rescale(c.v, c.from, c.to)
		if got != c.want || ok != c.ok {
			t.Fatalf("Rescale(%d,%d,%d) = %d,%v want %d,%v", c.v, c.from, c.to, got, ok, c.want, c.ok)
		}
	}
}
