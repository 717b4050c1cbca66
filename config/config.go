package config

import (
	"fmt"
	"os"
	"strings"

	"digipot-go/drivers/mcp443x"

	"gopkg.in/yaml.v3"
)

// Board describes the pots wired to one I2C bus.
type Board struct {
	Bus   string `yaml:"bus"`   // /dev/i2c-N or "sim"
	Steps uint16 `yaml:"steps"` // 129 or 257
	Pots  []Pot  `yaml:"pots"`
}

// Pot is one wiper of one part.
type Pot struct {
	ID        string     `yaml:"id"`
	Selector  uint8      `yaml:"selector"`
	Channel   uint8      `yaml:"channel"`
	Wiper     *uint8     `yaml:"wiper,omitempty"`
	Terminals *Terminals `yaml:"terminals,omitempty"`
}

// Terminals is the YAML form of mcp443x.Terminals. Omitted fields read as connected.
type Terminals struct {
	HW *bool `yaml:"hw,omitempty"`
	A  *bool `yaml:"a,omitempty"`
	W  *bool `yaml:"w,omitempty"`
	B  *bool `yaml:"b,omitempty"`
}

func on(p *bool) bool { return p == nil || *p }

// Driver converts t to the driver type.
func (t Terminals) Driver() mcp443x.Terminals {
	return mcp443x.Terminals{HW: on(t.HW), A: on(t.A), W: on(t.W), B: on(t.B)}
}

// EmbeddedBoardLookup resolves a named built-in board. Tests may replace it.
var EmbeddedBoardLookup = func(name string) ([]byte, bool) {
	b, ok := embeddedBoards[name]
	return b, ok
}

// Load reads a board file, or a built-in board when path is "builtin:<name>".
func Load(path string) (Board, error) {
	if name, ok := strings.CutPrefix(path, "builtin:"); ok {
		raw, found := EmbeddedBoardLookup(name)
		if !found {
			return Board{}, fmt.Errorf("no built-in board %q", name)
		}
		return Parse(raw)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return Board{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return b, nil
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Board{}, err
	}
	if strings.TrimSpace(b.Bus) == "" {
		b.Bus = "sim"
	}
	if b.Steps == 0 {
		b.Steps = mcp443x.Steps8Bit
	}
	if err := Validate(b); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks ids, ranges and wiper values against the tap count.
func Validate(b Board) error {
	if err := (mcp443x.Config{Steps: b.Steps}).Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	full := b.Steps - 1
	seen := map[string]bool{}
	wires := map[[2]uint8]string{}
	for i, p := range b.Pots {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("pot[%d] missing id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("pot[%d] duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Selector > 3 {
			return fmt.Errorf("pot %q: selector %d out of range", p.ID, p.Selector)
		}
		if p.Channel > 3 {
			return fmt.Errorf("pot %q: channel %d out of range", p.ID, p.Channel)
		}
		key := [2]uint8{p.Selector, p.Channel}
		if other, dup := wires[key]; dup {
			return fmt.Errorf("pot %q: selector %d channel %d already used by %q", p.ID, p.Selector, p.Channel, other)
		}
		wires[key] = p.ID
		if p.Wiper != nil && uint16(*p.Wiper) > full {
			return fmt.Errorf("pot %q: wiper %d above full scale %d", p.ID, *p.Wiper, full)
		}
	}
	return nil
}

// Selectors lists the distinct parts referenced by the board, in order of first use.
func (b Board) Selectors() []mcp443x.Selector {
	var out []mcp443x.Selector
	seen := [4]bool{}
	for _, p := range b.Pots {
		if p.Selector <= 3 && !seen[p.Selector] {
			seen[p.Selector] = true
			out = append(out, mcp443x.Selector(p.Selector))
		}
	}
	return out
}
