package errcode

// Code is a stable error identifier shared by the encoder, the drivers and the CLI.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK               Code = "ok"
	OutOfRange       Code = "out_of_range"
	InvalidOperation Code = "invalid_operation"
	InvalidFrame     Code = "invalid_frame"
	InvalidParams    Code = "invalid_params"
	NoDevice         Code = "no_device"
	Unsupported      Code = "unsupported"

	Error Code = "error" // generic fallback
)

// E keeps the failing operation and an optional cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

// New builds an *E for op with a short message.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap builds an *E that keeps err as its cause.
func Wrap(c Code, op string, err error) *E { return &E{C: c, Op: op, Err: err} }

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.OutOfRange) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return Of(inner)
		}
	}
	return Error
}

// MapDriverErr maps a transport error to a Code.
// Codes pass through; raw bus errors are reported as Error.
func MapDriverErr(err error) Code {
	return Of(err)
}
