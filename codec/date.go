package codec

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

var monthByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Date layout patterns, matched in order. Each has named capture groups
// consumed by parseDateMatch. An optional leading or trailing day-of-week
// token is stripped before matching, not validated against the computed
// date.
var (
	dayOfWeekPrefix = regexp.MustCompile(`(?i)^(mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+`)
	dayOfWeekSuffix = regexp.MustCompile(`(?i)\s+(mon|tue|wed|thu|fri|sat|sun)[a-z]*$`)

	reISODate    = regexp.MustCompile(`^(?P<y>\d{4})-(?P<mo>\d{1,2})-(?P<d>\d{1,2})$`)
	reUSDate     = regexp.MustCompile(`^(?P<mo>\d{1,2})-(?P<d>\d{1,2})-(?P<y>\d{4})$`)
	reYearMonDay = regexp.MustCompile(`(?i)^(?P<y>\d{4})[\s,]+(?P<mon>[a-z]+)[\s,]+(?P<d>\d{1,2})$`)
	reDayMonYear = regexp.MustCompile(`(?i)^(?P<d>\d{1,2})[\s,]+(?P<mon>[a-z]+)[\s,]+(?P<y>\d{4})$`)
	reMonDayYear = regexp.MustCompile(`(?i)^(?P<mon>[a-z]+)[\s,]+(?P<d>\d{1,2})[\s,]+(?P<y>\d{4})$`)

	reUnixStyle = regexp.MustCompile(
		`(?i)^(?P<mon>[a-z]+)\s+(?P<d>\d{1,2})\s+(?P<h>\d{1,2}):(?P<mi>\d{2}):(?P<s>\d{2})\s+(?P<tz>[a-zA-Z0-9+\-:]+)\s+(?P<y>\d{4})$`)

	reTimeFrac = regexp.MustCompile(
		`^(?P<h>\d{1,2}):(?P<mi>\d{2}):(?P<s>\d{2})\.(?P<f>\d+)(?P<tz>[zZ]|[+\-]\d{2}:?\d{2})?$`)
	reTimeSec = regexp.MustCompile(
		`^(?P<h>\d{1,2}):(?P<mi>\d{2}):(?P<s>\d{2})(?P<tz>[zZ]|[+\-]\d{2}:?\d{2})?$`)
	reTimeMin = regexp.MustCompile(
		`^(?P<h>\d{1,2}):(?P<mi>\d{2})(?P<tz>[zZ]|[+\-]\d{2}:?\d{2})?$`)
)

func registerDateCodecs(r *Registry) {
	r.RegisterReader(timeType, func(raw any, _ Stack) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return time.Time{}, fmt.Errorf("codec: date value must be a string, got %T", raw)
		}

		return ParseDate(s)
	})

	r.RegisterWriter(timeType, func(value any, _ bool, sink Sink) error {
		t := value.(time.Time)

		return sink.WriteRaw(strconv.Quote(t.Format(time.RFC3339Nano)))
	}, true)
}

// ParseDate recognizes the date and time layouts of section 4.4: six date
// forms, three time forms, with an optional leading or trailing
// day-of-week token. Field values are range-checked (month 1-12, day
// 1-31, hour 0-23, minute/second 0-59) before time.Date is called.
func ParseDate(s string) (time.Time, error) {
	s = dayOfWeekPrefix.ReplaceAllString(s, "")
	s = dayOfWeekSuffix.ReplaceAllString(s, "")

	if m := reUnixStyle.FindStringSubmatch(s); m != nil {
		return buildUnixStyle(reUnixStyle, m)
	}

	if m := reISODate.FindStringSubmatch(s); m != nil {
		return buildNumericDate(reISODate, m, "y", "mo", "d")
	}

	if m := reUSDate.FindStringSubmatch(s); m != nil {
		return buildNumericDate(reUSDate, m, "y", "mo", "d")
	}

	if m := reYearMonDay.FindStringSubmatch(s); m != nil {
		return buildNamedMonthDate(reYearMonDay, m)
	}

	if m := reDayMonYear.FindStringSubmatch(s); m != nil {
		return buildNamedMonthDate(reDayMonYear, m)
	}

	if m := reMonDayYear.FindStringSubmatch(s); m != nil {
		return buildNamedMonthDate(reMonDayYear, m)
	}

	if m := reTimeFrac.FindStringSubmatch(s); m != nil {
		return buildTime(reTimeFrac, m, true)
	}

	if m := reTimeSec.FindStringSubmatch(s); m != nil {
		return buildTime(reTimeSec, m, false)
	}

	if m := reTimeMin.FindStringSubmatch(s); m != nil {
		return buildTime(reTimeMin, m, false)
	}

	return time.Time{}, fmt.Errorf("codec: %q does not match any recognized date or time layout", s)
}

func namedGroup(re *regexp.Regexp, m []string, name string) string {
	for i, n := range re.SubexpNames() {
		if n == name && i < len(m) {
			return m[i]
		}
	}

	return ""
}

func buildNumericDate(re *regexp.Regexp, m []string, yName, moName, dName string) (time.Time, error) {
	y, _ := strconv.Atoi(namedGroup(re, m, yName))
	mo, _ := strconv.Atoi(namedGroup(re, m, moName))
	d, _ := strconv.Atoi(namedGroup(re, m, dName))

	if err := validateDateFields(mo, d, 0, 0, 0); err != nil {
		return time.Time{}, err
	}

	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), nil
}

func buildNamedMonthDate(re *regexp.Regexp, m []string) (time.Time, error) {
	y, _ := strconv.Atoi(namedGroup(re, m, "y"))
	d, _ := strconv.Atoi(namedGroup(re, m, "d"))

	mon, ok := monthByName[toLower3(namedGroup(re, m, "mon"))]
	if !ok {
		return time.Time{}, fmt.Errorf("codec: unrecognized month name %q", namedGroup(re, m, "mon"))
	}

	if err := validateDateFields(int(mon), d, 0, 0, 0); err != nil {
		return time.Time{}, err
	}

	return time.Date(y, mon, d, 0, 0, 0, 0, time.UTC), nil
}

func buildUnixStyle(re *regexp.Regexp, m []string) (time.Time, error) {
	y, _ := strconv.Atoi(namedGroup(re, m, "y"))
	d, _ := strconv.Atoi(namedGroup(re, m, "d"))
	h, _ := strconv.Atoi(namedGroup(re, m, "h"))
	mi, _ := strconv.Atoi(namedGroup(re, m, "mi"))
	sec, _ := strconv.Atoi(namedGroup(re, m, "s"))

	mon, ok := monthByName[toLower3(namedGroup(re, m, "mon"))]
	if !ok {
		return time.Time{}, fmt.Errorf("codec: unrecognized month name %q", namedGroup(re, m, "mon"))
	}

	if err := validateDateFields(int(mon), d, h, mi, sec); err != nil {
		return time.Time{}, err
	}

	loc := resolveZone(namedGroup(re, m, "tz"))

	return time.Date(y, mon, d, h, mi, sec, 0, loc), nil
}

func buildTime(re *regexp.Regexp, m []string, hasFrac bool) (time.Time, error) {
	h, _ := strconv.Atoi(namedGroup(re, m, "h"))
	mi, _ := strconv.Atoi(namedGroup(re, m, "mi"))

	sec := 0
	if s := namedGroup(re, m, "s"); s != "" {
		sec, _ = strconv.Atoi(s)
	}

	if err := validateDateFields(1, 1, h, mi, sec); err != nil {
		return time.Time{}, err
	}

	nsec := 0

	if hasFrac {
		frac := namedGroup(re, m, "f")
		for len(frac) < 9 {
			frac += "0"
		}

		nsec, _ = strconv.Atoi(frac[:9])
	}

	loc := resolveZone(namedGroup(re, m, "tz"))

	now := time.Now().In(loc)

	return time.Date(now.Year(), now.Month(), now.Day(), h, mi, sec, nsec, loc), nil
}

func resolveZone(tz string) *time.Location {
	if tz == "" || tz == "Z" || tz == "z" {
		return time.UTC
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}

	return time.UTC
}

func validateDateFields(month, day, hour, minute, second int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("codec: month %d out of range 1-12", month)
	}

	if day < 1 || day > 31 {
		return fmt.Errorf("codec: day %d out of range 1-31", day)
	}

	if hour < 0 || hour > 23 {
		return fmt.Errorf("codec: hour %d out of range 0-23", hour)
	}

	if minute < 0 || minute > 59 {
		return fmt.Errorf("codec: minute %d out of range 0-59", minute)
	}

	if second < 0 || second > 59 {
		return fmt.Errorf("codec: second %d out of range 0-59", second)
	}

	return nil
}

func toLower3(s string) string {
	if len(s) < 3 {
		return s
	}

	b := []byte(s[:3])
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}

	return string(b)
}
