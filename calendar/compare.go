package calendar

import "slices"

// Compare orders two dates of the same calendar system by (year, month, leap, day).
// A leap month sorts right after the regular month with the same number. Dates of
// different systems must be converted before comparing.
func Compare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	case a.Leap != b.Leap:
		if a.Leap {
			return 1
		}
		return -1
	default:
		return sign(a.Day - b.Day)
	}
}

// Same ignores the time of day.
func Same(a, b Date) bool {
	return Compare(a, b) == 0
}

func Before(a, b Date) bool {
	return Compare(a, b) < 0
}

func After(a, b Date) bool {
	return Compare(a, b) > 0
}

// Between is inclusive of both bounds.
func Between(d, start, end Date) bool {
	return Compare(d, start) >= 0 && Compare(d, end) <= 0
}

// BetweenExclusive excludes both bounds.
func BetweenExclusive(d, start, end Date) bool {
	return Compare(d, start) > 0 && Compare(d, end) < 0
}

// Sort returns a sorted copy of dates. Equal dates keep their relative order in both directions.
func Sort(dates []Date, descending bool) []Date {
	sorted := slices.Clone(dates)
	slices.SortStableFunc(sorted, func(a, b Date) int {
		if descending {
			return Compare(b, a)
		}
		return Compare(a, b)
	})
	return sorted
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
