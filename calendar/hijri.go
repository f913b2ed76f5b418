package calendar

// Hijri is the tabular (civil) Islamic calendar: odd months have 30 days, even months 29,
// and Dhu al-Hijjah gains a day in 11 years of every 30-year cycle.
const (
	hijriEpochJDN = 1948440 // 1 Muharram 1 AH, 16 July 622 (Julian)
	hijriMinYear  = 1
	hijriMaxYear  = 9999
)

func NewHijri() *Adapter {
	return &Adapter{typ: Hijri, sys: hijriSystem{}}
}

type hijriSystem struct{}

func (hijriSystem) yearBounds() (int, int) {
	return hijriMinYear, hijriMaxYear
}

func (hijriSystem) daysInMonth(year, month int) int {
	return HijriMonthLength(year, month)
}

func (hijriSystem) isLeapYear(year int) bool {
	return IsHijriLeapYear(year)
}

func (hijriSystem) toJDN(d Date) int {
	return hijriToJDN(d.Year, d.Month, d.Day)
}

func (hijriSystem) fromJDN(jdn int) (Date, bool) {
	if jdn < hijriEpochJDN {
		return Date{}, false
	}

	y := (30*(jdn-hijriEpochJDN) + 10646) / 10631
	for jdn < hijriToJDN(y, 1, 1) {
		y--
	}
	for jdn >= hijriToJDN(y+1, 1, 1) {
		y++
	}
	if y > hijriMaxYear {
		return Date{}, false
	}

	k := jdn - hijriToJDN(y, 1, 1)
	m := 1
	for m < 12 && k >= HijriMonthLength(y, m) {
		k -= HijriMonthLength(y, m)
		m++
	}
	return Date{Year: y, Month: m, Day: k + 1}, true
}

func HijriMonthLength(year, month int) int {
	if month%2 == 1 {
		return 30
	}
	if month != 12 || !IsHijriLeapYear(year) {
		return 29
	}
	return 30
}

func IsHijriLeapYear(year int) bool {
	return (11*year+14)%30 < 11
}

func hijriToJDN(y, m, d int) int {
	// (59*(m-1)+1)/2 is ceil(29.5*(m-1)).
	return d + (59*(m-1)+1)/2 + (y-1)*354 + (3+11*y)/30 + hijriEpochJDN - 1
}
