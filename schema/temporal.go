package schema

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	secondsLayout = "2006-01-02 15:04:05"
	parseLayout   = "2006-01-02 15:04:05.999999999"
	secondsPerDay = 86400
)

// Canonical widths of the time type.
const (
	PrecisionSeconds      = 19
	PrecisionMilliseconds = 23
	PrecisionMicroseconds = 26
	PrecisionNanoseconds  = 29
)

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// daysOf returns the calendar day of t in loc as days since the epoch.
func daysOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// startOfDay returns midnight of day in loc.
func startOfDay(day Date, loc *time.Location) time.Time {
	y, m, d := time.Unix(int64(day)*secondsPerDay, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dateHandler() handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Date],
		parse: func(text string) (Payload, error) {
			t, err := time.Parse(dateLayout, text)
			if err != nil {
				return nil, err
			}
			return Date(floorDiv(t.Unix(), secondsPerDay)), nil
		},
		format: func(p Payload, _ int) string {
			return time.Unix(int64(p.(Date))*secondsPerDay, 0).UTC().Format(dateLayout)
		},
		compare: func(a, b Payload) int {
			return cmp.Compare(a.(Date), b.(Date))
		},
	}
}

// naturalTimePrecision returns the shortest canonical width that keeps the
// sub-second part of t.
func naturalTimePrecision(t time.Time) int {
	ns := t.Nanosecond()
	switch {
	case ns == 0:
		return PrecisionSeconds
	case ns%1_000_000 == 0:
		return PrecisionMilliseconds
	case ns%1_000 == 0:
		return PrecisionMicroseconds
	}
	return PrecisionNanoseconds
}

// canonicalTimePrecision maps a precision hint onto one of the four widths.
func canonicalTimePrecision(hint int) int {
	switch {
	case hint <= PrecisionSeconds:
		return PrecisionSeconds
	case hint <= PrecisionMilliseconds:
		return PrecisionMilliseconds
	case hint <= PrecisionMicroseconds:
		return PrecisionMicroseconds
	}
	return PrecisionNanoseconds
}

func timeHandler(loc *time.Location) handler {
	return handler{
		alignRight:   true,
		maxPrecision: PrecisionNanoseconds,
		accepts:      is[Timestamp],
		parse: func(text string) (Payload, error) {
			s := text
			if len(s) > 10 && s[10] == 'T' {
				s = s[:10] + " " + s[11:]
			}
			t, err := time.ParseInLocation(parseLayout, s, loc)
			if err != nil {
				if t2, err2 := time.Parse(time.RFC3339Nano, text); err2 == nil {
					return Timestamp{t2}, nil
				}
				return nil, err
			}
			return Timestamp{t}, nil
		},
		format: func(p Payload, precision int) string {
			t := p.(Timestamp).Time
			if precision <= Natural {
				precision = naturalTimePrecision(t)
			}
			base := t.In(loc).Format(secondsLayout)
			frac := fmt.Sprintf("%09d", t.Nanosecond())
			switch canonicalTimePrecision(precision) {
			case PrecisionSeconds:
				return base
			case PrecisionMilliseconds:
				return base + "." + frac[:3]
			case PrecisionMicroseconds:
				return base + "." + frac[:6]
			}
			return base + "." + frac
		},
		compare: func(a, b Payload) int {
			return a.(Timestamp).Compare(b.(Timestamp).Time)
		},
		natural: func(p Payload) int {
			return naturalTimePrecision(p.(Timestamp).Time)
		},
	}
}

// intervalHandler handles lengths of time stored in milliseconds.
func intervalHandler() handler {
	const maxMillis = int64(1<<63-1) / int64(time.Millisecond)
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Int],
		parse: func(text string) (Payload, error) {
			if ms, ok := strings.CutSuffix(text, "ms"); ok {
				if v, err := strconv.ParseInt(ms, 10, 64); err == nil {
					return Int(v), nil
				}
			}
			d, err := time.ParseDuration(text)
			if err != nil {
				return nil, err
			}
			return Int(d.Milliseconds()), nil
		},
		format: func(p Payload, _ int) string {
			ms := int64(p.(Int))
			if ms > maxMillis || ms < -maxMillis {
				return strconv.FormatInt(ms, 10) + "ms"
			}
			return (time.Duration(ms) * time.Millisecond).String()
		},
		compare: compareInts,
	}
}
