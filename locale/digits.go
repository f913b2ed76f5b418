package locale

import (
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// NumberSystem selects the digit glyphs used for display.
type NumberSystem string

const (
	Latin   NumberSystem = "latin"
	Persian NumberSystem = "persian"
	Arabic  NumberSystem = "arabic"
	Chinese NumberSystem = "chinese"
)

var digits = map[NumberSystem][10]rune{
	Latin:   {'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'},
	Persian: {'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'},
	Arabic:  {'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'},
	Chinese: {'〇', '一', '二', '三', '四', '五', '六', '七', '八', '九'},
}

// latinOf maps every non-latin digit glyph back to its value.
var latinOf = func() map[rune]rune {
	m := make(map[rune]rune, 30)
	for ns, set := range digits {
		if ns == Latin {
			continue
		}
		for i, r := range set {
			m[r] = rune('0' + i)
		}
	}
	return m
}()

func (ns NumberSystem) Valid() bool {
	_, ok := digits[ns]
	return ok
}

// ToLocalDigits replaces ASCII digits in s. Unknown systems render Persian digits.
func ToLocalDigits(s string, ns NumberSystem) string {
	set, ok := digits[ns]
	if !ok {
		set = digits[Persian]
	}
	if ns == Latin {
		return s
	}

	t := runes.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return set[r-'0']
		}
		return r
	})
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

// ToLatinDigits converts Persian, Arabic and Chinese digits in s to ASCII.
func ToLatinDigits(s string) string {
	t := runes.Map(func(r rune) rune {
		if l, ok := latinOf[r]; ok {
			return l
		}
		return r
	})
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

// Pad left-pads n with zeros to width and localizes the digits.
func Pad(n, width int, ns NumberSystem) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if neg {
		s = "-" + s
	}
	return ToLocalDigits(s, ns)
}
