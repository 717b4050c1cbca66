//go:build linux

package platform

import (
	"runtime"
	"sync"
	"unsafe"

	"digipot-go/errcode"
	"digipot-go/x/conv"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Kernel i2c-dev ABI (linux/i2c.h, linux/i2c-dev.h).
const (
	i2cRDWR = 0x0707
	i2cMRD  = 0x0001
)

type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   uintptr
}

type i2cRdwrData struct {
	msgs  uintptr
	nmsgs uint32
}

// I2CDev is a drivers.I2C backed by a /dev/i2c-N character device.
// A Tx with both w and r becomes one combined transaction with a repeated start.
type I2CDev struct {
	mu   sync.Mutex
	fd   int
	path string
	lg   zerolog.Logger
}

// OpenI2CDev opens path (e.g. /dev/i2c-1).
func OpenI2CDev(path string, lg zerolog.Logger) (*I2CDev, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errcode.Wrap(errcode.NoDevice, "open_i2c", err)
	}
	return &I2CDev{fd: fd, path: path, lg: lg.With().Str("dev", path).Logger()}, nil
}

func (d *I2CDev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

func (d *I2CDev) Tx(addr uint16, w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var msgs [2]i2cMsg
	n := 0
	if len(w) > 0 {
		msgs[n] = i2cMsg{addr: addr, len: uint16(len(w)), buf: uintptr(unsafe.Pointer(&w[0]))}
		n++
	}
	if len(r) > 0 {
		msgs[n] = i2cMsg{addr: addr, flags: i2cMRD, len: uint16(len(r)), buf: uintptr(unsafe.Pointer(&r[0]))}
		n++
	}
	if n == 0 {
		return errcode.New(errcode.InvalidParams, "i2c_tx", "empty transaction")
	}
	data := i2cRdwrData{msgs: uintptr(unsafe.Pointer(&msgs[0])), nmsgs: uint32(n)}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), i2cRDWR, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	runtime.KeepAlive(&msgs)

	ev := d.lg.Debug()
	if errno != 0 {
		ev = d.lg.Warn().Str("errno", errno.Error())
	}
	ev.Str("addr", conv.Hex(addr)).Hex("w", w).Hex("r", r).Msg("i2c tx")

	if errno != 0 {
		if errno == unix.ENXIO || errno == unix.EREMOTEIO {
			return errcode.Wrap(errcode.NoDevice, "i2c_tx", errno)
		}
		return errcode.Wrap(errcode.Error, "i2c_tx", errno)
	}
	return nil
}
