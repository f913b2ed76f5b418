package calendar

import (
	"sync"

	lunar "github.com/6tail/lunar-go/calendar"
)

// Chinese lunisolar calendar for lunar years 1900-2100. Month boundaries and leap
// months come from lunar-go; years are numbered as the Gregorian year in which they start.
const (
	chineseMinYear = 1900
	chineseMaxYear = 2100
)

// chineseYear is the layout of one lunar year.
type chineseYear struct {
	start     int     // JDN of 1/1
	months    [12]int // lengths of the regular months
	leapMonth int     // 0 if none
	leapDays  int
}

func (y *chineseYear) days() int {
	n := y.leapDays
	for _, m := range y.months {
		n += m
	}
	return n
}

var chineseYears = struct {
	sync.Mutex
	m map[int]*chineseYear
}{m: map[int]*chineseYear{}}

// loadChineseYear computes the layout of a supported year once. lunar-go runs under the
// lock, its year cache is package state.
func loadChineseYear(year int) *chineseYear {
	chineseYears.Lock()
	defer chineseYears.Unlock()

	if y, ok := chineseYears.m[year]; ok {
		return y
	}

	ly := lunar.NewLunarYear(year)
	y := &chineseYear{leapMonth: ly.GetLeapMonth()}
	for m := 1; m <= 12; m++ {
		y.months[m-1] = ly.GetMonth(m).GetDayCount()
	}
	if y.leapMonth != 0 {
		y.leapDays = ly.GetMonth(-y.leapMonth).GetDayCount()
	}
	s := lunar.NewLunarFromYmd(year, 1, 1).GetSolar()
	y.start = gregorianToJDN(s.GetYear(), s.GetMonth(), s.GetDay())

	chineseYears.m[year] = y
	return y
}

// ChineseCalendar exposes the intercalary month of each year.
type ChineseCalendar struct {
	*Adapter
}

func NewChinese() *ChineseCalendar {
	return &ChineseCalendar{Adapter: &Adapter{typ: Chinese, sys: chineseSystem{}}}
}

func (c *ChineseCalendar) LeapMonth(year int) (month, days int) {
	if year < chineseMinYear || year > chineseMaxYear {
		return 0, 0
	}
	return chineseSystem{}.leapMonth(year)
}

type chineseSystem struct{}

func (chineseSystem) yearBounds() (int, int) {
	return chineseMinYear, chineseMaxYear
}

func (chineseSystem) daysInMonth(year, month int) int {
	return loadChineseYear(year).months[month-1]
}

// isLeapYear: a leap year has thirteen months.
func (s chineseSystem) isLeapYear(year int) bool {
	m, _ := s.leapMonth(year)
	return m != 0
}

func (chineseSystem) leapMonth(year int) (month, days int) {
	y := loadChineseYear(year)
	return y.leapMonth, y.leapDays
}

func (chineseSystem) toJDN(d Date) int {
	y := loadChineseYear(d.Year)
	jdn := y.start
	for m := 1; m < d.Month; m++ {
		jdn += y.months[m-1]
		if m == y.leapMonth {
			jdn += y.leapDays
		}
	}
	if d.Leap {
		jdn += y.months[d.Month-1]
	}
	return jdn + d.Day - 1
}

func (chineseSystem) fromJDN(jdn int) (Date, bool) {
	// A lunar year starts in January or February of the Gregorian year of the same number.
	year, _, _ := jdnToGregorian(jdn)
	if year > chineseMaxYear || (year >= chineseMinYear && jdn < loadChineseYear(year).start) {
		year--
	}
	if year < chineseMinYear || year > chineseMaxYear {
		return Date{}, false
	}

	y := loadChineseYear(year)
	k := jdn - y.start
	if k < 0 || k >= y.days() {
		return Date{}, false
	}

	for m := 1; m <= 12; m++ {
		n := y.months[m-1]
		if k < n {
			return Date{Year: year, Month: m, Day: k + 1}, true
		}
		k -= n

		if m == y.leapMonth {
			if k < y.leapDays {
				return Date{Year: year, Month: m, Day: k + 1, Leap: true}, true
			}
			k -= y.leapDays
		}
	}
	return Date{}, false
}
