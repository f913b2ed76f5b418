package calendar

import "time"

// Julian Day Number arithmetic for the proleptic Gregorian calendar. Integer division
// truncates, the offsets keep every intermediate value positive for the supported years.

func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j = j + (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}

func jdnFromTime(t time.Time) int {
	y, m, d := t.Date()
	return gregorianToJDN(y, int(m), d)
}

func timeFromJDN(jdn int) time.Time {
	y, m, d := jdnToGregorian(jdn)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
