// Package conv formats small integers for error messages and logs without
// pulling fmt or strconv into driver code.
package conv

const hexDigits = "0123456789abcdef"

// Utoa writes the base-10 form of n into the tail of buf and returns the used
// slice. buf should be at least 20 bytes for any uint64.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	if n == 0 {
		buf[i-1] = '0'
		return buf[i-1:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Dec returns n in base 10.
func Dec[T ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int](n T) string {
	var b [20]byte
	if n < 0 {
		return "-" + string(Utoa(b[:], uint64(-n)))
	}
	return string(Utoa(b[:], uint64(n)))
}

// Hex returns n as 0x followed by at least two lowercase hex digits.
func Hex[T ~uint8 | ~uint16](n T) string {
	v := uint16(n)
	b := [4]byte{hexDigits[v>>12&0xF], hexDigits[v>>8&0xF], hexDigits[v>>4&0xF], hexDigits[v&0xF]}
	i := 0
	for i < 2 && b[i] == '0' {
		i++
	}
	return "0x" + string(b[i:])
}
