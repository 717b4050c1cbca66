package main

import (
	"fmt"
	"io"

	"digipot-go/config"
	"digipot-go/drivers/mcp443x"
	"digipot-go/errcode"
	"digipot-go/internal/platform"
	"digipot-go/types"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var applyConfig string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a board description and read every pot back",
	Long: `Load a YAML board description, write the configured terminals and
wiper values of every pot, then read each pot back.

Use --config builtin:demo for the built-in emulated board.`,
	Example: `  potctl apply --config board.yaml
  potctl apply --config builtin:demo -f json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lg := newLogger()
		board, err := config.Load(applyConfig)
		if err != nil {
			return err
		}
		bus, err := platform.OpenBus(board.Bus, board.Selectors(), board.Steps, lg)
		if err != nil {
			return fmt.Errorf("open bus %s: %w", board.Bus, err)
		}
		defer bus.Close()

		states, err := applyBoard(board, bus, lg)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), types.KindPot, states, func(w io.Writer) error {
			for _, s := range states {
				if s.Error != "" {
					fmt.Fprintf(w, "%-10s error=%s\n", s.Pot.ID, s.Error)
					continue
				}
				t := s.Terminals
				fmt.Fprintf(w, "%-10s wiper=%3d (%3d%%) hw=%t a=%t w=%t b=%t\n",
					s.Pot.ID, s.Wiper, s.Percent, t.HW, t.A, t.W, t.B)
			}
			return nil
		})
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyConfig, "config", "c", "builtin:demo", "Board file or builtin:<name>")
}

// applyBoard configures each pot in order. A pot that fails is reported in
// its state and does not stop the others; only a board with no reachable
// pot is an error.
func applyBoard(board config.Board, bus platform.Bus, lg zerolog.Logger) ([]types.PotState, error) {
	devs := map[uint8]*mcp443x.Device{}
	states := make([]types.PotState, 0, len(board.Pots))
	failed := 0

	for _, p := range board.Pots {
		d, ok := devs[p.Selector]
		if !ok {
			d = mcp443x.New(bus, mcp443x.Config{Selector: mcp443x.Selector(p.Selector), Steps: board.Steps})
			devs[p.Selector] = d
		}
		plg := lg.With().Str("pot", p.ID).Uint8("selector", p.Selector).Uint8("channel", p.Channel).Logger()

		st, err := applyPot(d, board.Bus, p)
		if err != nil {
			failed++
			st.Error = string(errcode.MapDriverErr(err))
			plg.Error().Err(err).Msg("apply failed")
		} else {
			plg.Info().Uint16("wiper", st.Wiper).Msg("applied")
		}
		states = append(states, st)
	}
	if failed > 0 && failed == len(board.Pots) {
		return states, fmt.Errorf("no pot on %s could be applied", board.Bus)
	}
	return states, nil
}

func applyPot(d *mcp443x.Device, bus string, p config.Pot) (types.PotState, error) {
	st := types.PotState{Pot: types.PotInfo{
		ID:       p.ID,
		Bus:      bus,
		Addr:     d.Address(),
		Selector: p.Selector,
		Channel:  p.Channel,
		Steps:    d.Steps(),
	}}
	ch := mcp443x.Channel(p.Channel)
	if p.Terminals != nil {
		if err := d.SetTerminals(ch, p.Terminals.Driver()); err != nil {
			return st, err
		}
	}
	if p.Wiper != nil {
		if err := d.SetWiper(ch, *p.Wiper); err != nil {
			return st, err
		}
	}
	v, err := d.Wiper(ch)
	if err != nil {
		return st, err
	}
	pct, err := d.Percent(ch)
	if err != nil {
		return st, err
	}
	ts, err := d.Terminals(ch)
	if err != nil {
		return st, err
	}
	st.Wiper, st.Percent = v, pct
	st.Terminals = types.TerminalState{HW: ts.HW, A: ts.A, W: ts.W, B: ts.B}
	return st, nil
}
