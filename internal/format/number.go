package format

import (
	"fmt"
	"strconv"
	"time"
)

// FormatPercentage renders a percentage with the shortest decimal
// representation that round-trips, without exponent notation.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	out := make([]byte, 0, n+n/3)
	pre := n % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}

// FormatUint formats v with thousands separators.
func FormatUint(v uint64) string {
	return FormatNumberString(strconv.FormatUint(v, 10))
}

// FormatThroughput renders trials per second for a completed run.
func FormatThroughput(trials uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "n/a"
	}
	rate := float64(trials) / elapsed.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2fG trials/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2fM trials/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2fK trials/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f trials/s", rate)
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
