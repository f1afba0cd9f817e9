package jalali

import (
	"fmt"
	"time"
)

const (
	MinYear = 1
	MaxYear = 3177
)

// breaks are the Jalali years where the leap-cycle pattern changes.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

type yearInfo struct {
	leap  int // years since the last leap year; 0 means jy itself is leap
	gy    int // Gregorian year in which jy begins
	march int // day of March on which Farvardin 1 falls
}

// yearFacts computes the leap position and new-year day for jy.
// jy must lie within [breaks[0], breaks[len-1]).
func yearFacts(jy int) yearInfo {
	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0

	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return yearInfo{leap: leap, gy: gy, march: march}
}

// IsLeap reports whether Jalali year jy has a 30-day Esfand.
func IsLeap(jy int) bool {
	if jy < MinYear || jy > MaxYear {
		return false
	}
	return yearFacts(jy).leap == 0
}

// MonthLength returns the number of days in month jm of year jy, or 0 for an invalid month.
func MonthLength(jy, jm int) int {
	switch {
	case jm < 1 || jm > 12:
		return 0
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsLeap(jy):
		return 30
	default:
		return 29
	}
}

// Validate checks that (jy, jm, jd) names a real day in the supported range.
func Validate(jy, jm, jd int) error {
	if jy < MinYear || jy > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, jy, MinYear, MaxYear)
	}
	if jm < 1 || jm > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, jm)
	}
	if days := MonthLength(jy, jm); jd < 1 || jd > days {
		return fmt.Errorf("%w: day %d of %d/%d (month has %d days)", ErrInvalidDate, jd, jy, jm, days)
	}
	return nil
}

// ToGregorian returns midnight UTC of the Gregorian day matching Jalali jy/jm/jd.
func ToGregorian(jy, jm, jd int) (time.Time, error) {
	if err := Validate(jy, jm, jd); err != nil {
		return time.Time{}, err
	}
	gy, gm, gd := jdnToGregorian(jalaliToJDN(jy, jm, jd))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC), nil
}

// FromGregorian returns the Jalali date of t's calendar day.
func FromGregorian(t time.Time) (jy, jm, jd int, err error) {
	jdn := gregorianToJDN(t.Year(), int(t.Month()), t.Day())
	jy, jm, jd = jdnToJalali(jdn)
	if jy < MinYear || jy > MaxYear {
		return 0, 0, 0, fmt.Errorf("%w: %s maps to year %d", ErrInvalidDate, t.Format("2006-01-02"), jy)
	}
	return jy, jm, jd, nil
}

func jalaliToJDN(jy, jm, jd int) int {
	info := yearFacts(jy)
	return gregorianToJDN(info.gy, 3, info.march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func jdnToJalali(jdn int) (jy, jm, jd int) {
	gy, _, _ := jdnToGregorian(jdn)
	jy = gy - 621
	if jy < breaks[0] || jy >= breaks[len(breaks)-1] {
		return jy, 0, 0
	}
	info := yearFacts(jy)
	k := jdn - gregorianToJDN(gy, 3, info.march)

	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1
		}
		k -= 186
	} else {
		jy--
		k += 179
		if info.leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1
}

func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308
	gd = i%153/5 + 1
	gm = i/153%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
