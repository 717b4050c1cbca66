package platform

import (
	"digipot-go/drivers/mcp443x"

	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// SimBus is the bus name that selects the in-memory emulator.
const SimBus = "sim"

// Bus is an opened transport plus its release hook.
type Bus struct {
	drivers.I2C
	Host  *HostBus // non-nil for SimBus
	close func() error
}

func (b Bus) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBus opens name as an I2C transport. SimBus returns a HostBus with one
// part per selector in sims, each with the given tap count.
func OpenBus(name string, sims []mcp443x.Selector, steps uint16, lg zerolog.Logger) (Bus, error) {
	if name == "" || name == SimBus {
		h := NewHostBus(lg.With().Str("bus", SimBus).Logger())
		for _, sel := range sims {
			if err := h.AddPart(sel, steps); err != nil {
				return Bus{}, err
			}
		}
		return Bus{I2C: h, Host: h}, nil
	}
	dev, err := OpenI2CDev(name, lg)
	if err != nil {
		return Bus{}, err
	}
	return Bus{I2C: dev, close: dev.Close}, nil
}
