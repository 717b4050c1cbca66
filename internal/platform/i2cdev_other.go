//go:build !linux

package platform

import (
	"digipot-go/errcode"

	"github.com/rs/zerolog"
)

// I2CDev is only available on linux.
type I2CDev struct{}

func OpenI2CDev(path string, _ zerolog.Logger) (*I2CDev, error) {
	return nil, errcode.New(errcode.Unsupported, "open_i2c", path)
}

func (*I2CDev) Close() error { return nil }

func (*I2CDev) Tx(uint16, []byte, []byte) error { return errcode.Unsupported }
