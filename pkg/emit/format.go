package emit

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Supported directive grammar: %[flags][width][.precision]conversion.
const (
	flagChars   = "-+ 0#"
	conversions = "diuoxXcsfFeEgGaA%"

	// maxWidth bounds width and precision so a corrupt format string
	// cannot request an arbitrarily large allocation.
	maxWidth = 4096
)

// FormatError reports a format directive or argument outside the supported
// printf subset.
type FormatError struct {
	Format string
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q at offset %d: %s", e.Format, e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }

type directive struct {
	offset int
	flags  string
	width  int
	prec   int
	conv   byte
}

func (d directive) has(flag byte) bool {
	return strings.IndexByte(d.flags, flag) >= 0
}

// zeroPadded reports whether an integer directive pads with zeros: C drops
// the '0' flag under '-' or an explicit precision.
func (d directive) zeroPadded() bool {
	return d.has('0') && !d.has('-') && d.prec < 0 && d.width >= 0
}

// Format renders format with args using the restricted printf grammar.
// Extra arguments are ignored.
func Format(format string, args ...any) (string, error) {
	b, err := appendFormat(nil, format, args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Validate checks every directive in format without consuming arguments.
func Validate(format string) error {
	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}
		_, next, err := parseDirective(format, i)
		if err != nil {
			return err
		}
		i = next
	}
	return nil
}

func appendFormat(dst []byte, format string, args []any) ([]byte, error) {
	argi := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			dst = append(dst, format[i])
			i++
			continue
		}
		d, next, err := parseDirective(format, i)
		if err != nil {
			return nil, err
		}
		i = next
		if d.conv == '%' {
			dst = append(dst, '%')
			continue
		}
		if argi >= len(args) {
			return nil, &FormatError{Format: format, Offset: d.offset, Reason: "missing argument"}
		}
		dst, err = d.appendArg(dst, args[argi])
		if err != nil {
			return nil, &FormatError{Format: format, Offset: d.offset, Reason: err.Error()}
		}
		argi++
	}
	return dst, nil
}

func parseDirective(format string, start int) (directive, int, error) {
	d := directive{offset: start, width: -1, prec: -1}
	fail := func(reason string) (directive, int, error) {
		return directive{}, 0, &FormatError{Format: format, Offset: start, Reason: reason}
	}

	i := start + 1
	for i < len(format) && strings.IndexByte(flagChars, format[i]) >= 0 {
		i++
	}
	d.flags = format[start+1 : i]

	var ok bool
	if d.width, i, ok = number(format, i); !ok {
		return fail("width too large")
	}
	if i < len(format) && format[i] == '.' {
		if d.prec, i, ok = number(format, i+1); !ok {
			return fail("precision too large")
		}
		if d.prec < 0 {
			d.prec = 0
		}
	}

	if i >= len(format) {
		return fail("incomplete directive")
	}
	c := format[i]
	if strings.IndexByte(conversions, c) < 0 {
		return fail(fmt.Sprintf("unsupported conversion %q", c))
	}
	d.conv = c
	return d, i + 1, nil
}

// number parses a run of decimal digits; -1 means none were present.
func number(s string, i int) (int, int, bool) {
	n := -1
	for ; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		if n < 0 {
			n = 0
		}
		n = n*10 + int(s[i]-'0')
		if n > maxWidth {
			return 0, i, false
		}
	}
	return n, i, true
}

func (d directive) appendArg(dst []byte, arg any) ([]byte, error) {
	switch d.conv {
	case 'd', 'i':
		v, ok := toInt(arg)
		if !ok {
			return nil, argError("integer", arg)
		}
		return fmt.Appendf(dst, d.verb('d', d.flags), v), nil

	case 'u', 'o', 'x', 'X':
		v, ok := toInt(arg)
		if !ok {
			return nil, argError("integer", arg)
		}
		u := uint32(v)
		// Unsigned conversions take no sign flags, and C prints a bare
		// "0" for zero even in the alternate form.
		flags := strings.NewReplacer("+", "", " ", "").Replace(d.flags)
		if u == 0 {
			flags = strings.ReplaceAll(flags, "#", "")
		}
		if (d.conv == 'x' || d.conv == 'X') && u != 0 && d.has('#') && d.zeroPadded() {
			// C counts the 0x prefix inside the zero-padded width, Go
			// outside it.
			body := strconv.AppendUint([]byte{'0', d.conv}, uint64(u), 16)
			if d.conv == 'X' {
				body = bytes.ToUpper(body)
			}
			return d.zeroPadHex(dst, body), nil
		}
		verb := d.conv
		if verb == 'u' {
			verb = 'd'
		}
		return fmt.Appendf(dst, d.verb(verb, flags), u), nil

	case 'c':
		v, ok := toInt(arg)
		if !ok {
			return nil, argError("integer", arg)
		}
		return d.pad(dst, []byte{byte(v)}), nil

	case 's':
		s, ok := toString(arg)
		if !ok {
			return nil, argError("string", arg)
		}
		if d.prec >= 0 && d.prec < len(s) {
			s = s[:d.prec]
		}
		return d.pad(dst, []byte(s)), nil

	case 'f', 'F', 'e', 'E', 'g', 'G':
		f, ok := toFloat(arg)
		if !ok {
			return nil, argError("float", arg)
		}
		upper := d.conv == 'F' || d.conv == 'E' || d.conv == 'G'
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return d.pad(dst, d.signed(appendNonFinite(nil, f, upper))), nil
		}
		verb := d.conv
		if verb == 'F' {
			verb = 'f'
		}
		if (verb == 'g' || verb == 'G') && d.prec < 0 {
			// Go's %g defaults to the shortest representation, C's to six
			// significant digits.
			d.prec = 6
		}
		return fmt.Appendf(dst, d.verb(verb, d.flags), f), nil

	case 'a', 'A':
		f, ok := toFloat(arg)
		if !ok {
			return nil, argError("float", arg)
		}
		body := d.signed(AppendHexFloat(nil, f, d.prec, d.conv == 'A'))
		if d.has('0') && !d.has('-') && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return d.zeroPadHex(dst, body), nil
		}
		return d.pad(dst, body), nil
	}
	return nil, fmt.Errorf("unsupported conversion %q", d.conv)
}

// verb rebuilds the directive as a Go fmt verb. Go's flag, width and
// precision handling matches C for the numeric conversions routed here.
func (d directive) verb(conv byte, flags string) string {
	var sb strings.Builder
	sb.WriteByte('%')
	sb.WriteString(flags)
	if d.width >= 0 {
		sb.WriteString(strconv.Itoa(d.width))
	}
	if d.prec >= 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(d.prec))
	}
	sb.WriteByte(conv)
	return sb.String()
}

// signed applies the '+' and ' ' flags to an already formatted number.
func (d directive) signed(body []byte) []byte {
	if len(body) > 0 && body[0] == '-' {
		return body
	}
	switch {
	case d.has('+'):
		return append([]byte{'+'}, body...)
	case d.has(' '):
		return append([]byte{' '}, body...)
	}
	return body
}

func (d directive) pad(dst, body []byte) []byte {
	n := d.width - len(body)
	if n <= 0 {
		return append(dst, body...)
	}
	if d.has('-') {
		dst = append(dst, body...)
		return appendRepeat(dst, ' ', n)
	}
	dst = appendRepeat(dst, ' ', n)
	return append(dst, body...)
}

// zeroPadHex inserts zeros between the "0x" prefix and the digits.
func (d directive) zeroPadHex(dst, body []byte) []byte {
	n := d.width - len(body)
	if n <= 0 {
		return append(dst, body...)
	}
	prefix := 2
	if body[0] == '-' || body[0] == '+' || body[0] == ' ' {
		prefix = 3
	}
	dst = append(dst, body[:prefix]...)
	dst = appendRepeat(dst, '0', n)
	return append(dst, body[prefix:]...)
}

func appendRepeat(dst []byte, c byte, n int) []byte {
	for range n {
		dst = append(dst, c)
	}
	return dst
}

func argError(want string, arg any) error {
	return fmt.Errorf("%s argument expected, got %T", want, arg)
}

func toInt(arg any) (int64, bool) {
	switch v := arg.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// toFloat widens float32 arguments the way C varargs promote float to
// double.
func toFloat(arg any) (float64, bool) {
	switch v := arg.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func toString(arg any) (string, bool) {
	switch v := arg.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}
