// Package format renders dates and money the way the order list shows
// them: dd.mm.yyyy dates, "1 234,50" money.
package format

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "02.01.2006"

// Date renders a date as dd.mm.yyyy.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DatePtr renders an optional date, empty string when nil.
func DatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Date(*t)
}

// Money renders a value with two decimals, space as the thousands
// separator and comma as the decimal separator.
func Money(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	intPart, fracPart, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
