package calendar

// Jalali (solar Hijri) calendar. Leap years follow the breakpoint table of the
// astronomical calendar: each entry starts a new run of 33-year sub-cycles.
var jalaliBreaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

const (
	jalaliMinYear = 1
	jalaliMaxYear = 3177
)

func NewJalali() *Adapter {
	return &Adapter{typ: Jalali, sys: jalaliSystem{}}
}

type jalaliSystem struct{}

func (jalaliSystem) yearBounds() (int, int) {
	return jalaliMinYear, jalaliMaxYear
}

func (jalaliSystem) daysInMonth(year, month int) int {
	return JalaliMonthLength(year, month)
}

func (jalaliSystem) isLeapYear(year int) bool {
	return IsJalaliLeapYear(year)
}

func (jalaliSystem) toJDN(d Date) int {
	return jalaliToJDN(d.Year, d.Month, d.Day)
}

func (jalaliSystem) fromJDN(jdn int) (Date, bool) {
	jy, jm, jd := jdnToJalali(jdn)
	if jy < jalaliMinYear || jy > jalaliMaxYear {
		return Date{}, false
	}
	return Date{Year: jy, Month: jm, Day: jd}, true
}

// JalaliMonthLength: months 1-6 have 31 days, 7-11 have 30, Esfand has 29 or 30.
func JalaliMonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsJalaliLeapYear(jy):
		return 30
	default:
		return 29
	}
}

func IsJalaliLeapYear(jy int) bool {
	leap, _, _ := jalaliCycle(jy)
	return leap == 0
}

// GregorianToJalali converts a proleptic Gregorian date.
func GregorianToJalali(gy, gm, gd int) (jy, jm, jd int) {
	return jdnToJalali(gregorianToJDN(gy, gm, gd))
}

// JalaliToGregorian converts a Jalali date to the proleptic Gregorian calendar.
func JalaliToGregorian(jy, jm, jd int) (gy, gm, gd int) {
	return jdnToGregorian(jalaliToJDN(jy, jm, jd))
}

// jalaliCycle returns the position of jy in its 4-year leap sub-cycle (0 = leap year),
// the Gregorian year in which jy starts and the March day of Nowruz in that year.
func jalaliCycle(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := jalaliBreaks[0]

	jump := 0
	for i := 1; i < len(jalaliBreaks); i++ {
		jm := jalaliBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

func jalaliToJDN(jy, jm, jd int) int {
	_, gy, march := jalaliCycle(jy)
	return gregorianToJDN(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func jdnToJalali(jdn int) (jy, jm, jd int) {
	gy, _, _ := jdnToGregorian(jdn)
	jy = gy - 621
	leap, _, march := jalaliCycle(jy)

	k := jdn - gregorianToJDN(gy, 3, march)
	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1
}
