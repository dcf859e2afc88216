package format

import "strings"

// FormatNumberString inserts thousands separators into a string of decimal
// digits with an optional leading sign.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3)
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBinaryString groups binary digits in nibbles separated by '_', the
// way Go binary literals may be written. A leading sign is kept.
func FormatBinaryString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	n := len(s)
	if n <= 4 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/4)
	b.WriteString(sign)
	head := n % 4
	if head == 0 {
		head = 4
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 4 {
		b.WriteByte('_')
		b.WriteString(s[i : i+4])
	}
	return b.String()
}
