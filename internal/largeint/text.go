package largeint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// decimalChunk is the largest power of ten handled per division when
// rendering or parsing decimal text.
const (
	decimalChunk       = 1_000_000_000_000_000_000
	decimalChunkDigits = 18
)

// String returns x in binary: an optional '-' followed by the bits from most
// to least significant.
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.Grow(x.sig + 2)
	if x.neg {
		b.WriteByte('-')
	}
	for i := x.sig; i >= 0; i-- {
		b.WriteByte('0' + x.bit(i))
	}
	return b.String()
}

// Decimal returns x in base 10.
func (x *Int) Decimal() string {
	s, _ := x.decimal(nil)
	return s
}

func (x *Int) decimal(p *poller) (string, error) {
	if x.IsZero() {
		return "0", nil
	}
	chunk := NewUint64(decimalChunk)
	q := x.Clone().Abs()
	var parts []uint64
	for !q.IsZero() {
		quo, err := q.divmod(chunk, p)
		if err != nil {
			return "", err
		}
		parts = append(parts, q.Uint64())
		q = quo
	}

	var b strings.Builder
	if x.neg {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%d", parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		fmt.Fprintf(&b, "%0*d", decimalChunkDigits, parts[i])
	}
	return b.String(), nil
}

// ParseDecimal parses an optionally signed base-10 integer.
func ParseDecimal(s string) (*Int, error) {
	digits := s
	neg := false
	if digits != "" && (digits[0] == '-' || digits[0] == '+') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}

	z := Zero()
	for len(digits) > 0 {
		n := minInt(len(digits), decimalChunkDigits)
		var v, scale uint64 = 0, 1
		for _, c := range digits[:n] {
			v = v*10 + uint64(c-'0')
			scale *= 10
		}
		z.Mul(NewUint64(scale)).Add(NewUint64(v))
		digits = digits[n:]
	}
	z.neg = neg
	z.clearNegativeZero()
	return z, nil
}

// Format implements fmt.Formatter. The verbs 'b', 's' and 'v' print binary,
// 'd' prints decimal. The '+' flag forces a sign, '#' prefixes binary output
// with "0b", and width pads on the left (or right with '-').
func (x *Int) Format(s fmt.State, ch rune) {
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	var digits, prefix string
	switch ch {
	case 'b', 's', 'v':
		digits = x.Clone().Abs().String()
		if s.Flag('#') {
			prefix = "0b"
		}
	case 'd':
		digits = x.Clone().Abs().Decimal()
	default:
		fmt.Fprintf(s, "%%!%c(largeint.Int=%s)", ch, x.String())
		return
	}

	sign := ""
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	}
	text := sign + prefix + digits

	if w, ok := s.Width(); ok && len(text) < w {
		pad := strings.Repeat(" ", w-len(text))
		if s.Flag('-') {
			text += pad
		} else {
			text = pad + text
		}
	}
	io.WriteString(s, text)
}

// scan reads an optional run of sign characters followed by binary digits.
// Every '-' toggles the sign. The first rune that is not a binary digit is
// pushed back.
func (z *Int) scan(r io.RuneScanner) error {
	neg := false
	var digits []uint8
	sawSign := false

	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case len(digits) == 0 && !sawSign && unicode.IsSpace(ch):
			continue
		case len(digits) == 0 && ch == '-':
			neg = !neg
			sawSign = true
			continue
		case len(digits) == 0 && ch == '+':
			sawSign = true
			continue
		case ch == '0' || ch == '1':
			digits = append(digits, uint8(ch-'0'))
			continue
		}
		if err := r.UnreadRune(); err != nil {
			return err
		}
		break
	}

	if len(digits) == 0 {
		return ErrSyntax
	}
	z.sig = 0
	z.expand(len(digits) - 1)
	for i, d := range digits {
		z.bits[len(digits)-1-i] = d
	}
	z.contract()
	z.neg = neg
	z.clearNegativeZero()
	return nil
}

// Scan implements fmt.Scanner for the verbs 'b', 's' and 'v'.
func (z *Int) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'b', 's', 'v':
	default:
		return fmt.Errorf("largeint: invalid verb %%%c for Scan", verb)
	}
	state.SkipSpace()
	return z.scan(state)
}

// SetString sets z to the value of the binary text s and reports whether the
// whole string was consumed. On failure z is unchanged.
func (z *Int) SetString(s string) (*Int, bool) {
	tmp := new(Int)
	r := strings.NewReader(s)
	if err := tmp.scan(r); err != nil {
		return nil, false
	}
	if r.Len() != 0 {
		return nil, false
	}
	return z.Set(tmp), true
}

// Parse returns the Int described by the binary text s.
func Parse(s string) (*Int, error) {
	z, ok := new(Int).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return z, nil
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	if _, ok := z.SetString(string(text)); !ok {
		return fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	return nil
}

// MarshalJSON encodes x as a JSON string holding its binary text.
func (x *Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON decodes a JSON string of binary text. null is a no-op.
func (z *Int) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("largeint: cannot unmarshal %s: %w", data, err)
	}
	return z.UnmarshalText([]byte(s))
}
