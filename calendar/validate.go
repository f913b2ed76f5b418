package calendar

// Validate checks d against the real month lengths of c, including leap months, and
// the bounds of the optional time of day.
func Validate(c Calendar, d Date) error {
	if d.Month < 1 || d.Month > 12 {
		return dateErr(c.Type(), d, ErrInvalidDate)
	}

	n, err := MonthLength(c, d.Year, d.Month, d.Leap)
	if err != nil {
		return dateErr(c.Type(), d, unwrapDateErr(err))
	}
	if d.Day < 1 || d.Day > n {
		return dateErr(c.Type(), d, ErrInvalidDate)
	}

	if t := d.Time; t != nil {
		if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
			return dateErr(c.Type(), d, ErrInvalidDate)
		}
	}
	return nil
}

func IsValid(c Calendar, d Date) bool {
	return Validate(c, d) == nil
}
