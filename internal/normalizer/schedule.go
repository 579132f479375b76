package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// dowIndex maps Vietnamese day-of-week tokens to 0..6 starting Monday.
// "Thứ 2" is Monday; "CN" (chủ nhật) closes the week.
var dowIndex = map[string]int{
	"t2": 0, "thu 2": 0, "thu hai": 0,
	"t3": 1, "thu 3": 1, "thu ba": 1,
	"t4": 2, "thu 4": 2, "thu tu": 2,
	"t5": 3, "thu 5": 3, "thu nam": 3,
	"t6": 4, "thu 6": 4, "thu sau": 4,
	"t7": 5, "thu 7": 5, "thu bay": 5,
	"cn": 6, "chu nhat": 6,
}

var dowTokenRe = regexp.MustCompile(`thu\s*[2-7]|thu\s+(?:hai|ba|tu|nam|sau|bay)|t[2-7]\b|chu\s*nhat|cn\b`)

func lookupDay(tok string) (int, bool) {
	tok = strings.Join(strings.Fields(tok), " ")
	// "thu2" and "t 2" variants collapse to the canonical spellings.
	tok = strings.ReplaceAll(tok, "thu", "thu ")
	tok = strings.Join(strings.Fields(tok), " ")
	d, ok := dowIndex[tok]
	return d, ok
}

// CountWorkdays parses a raw working-days string such as "T2 - T7" or
// "Thứ 2 đến thứ 6, CN" into the number of distinct days per week.
// Ranges wrap through Sunday, so "T6 - T2" covers Fri, Sat, Sun, Mon.
// Returns 0 when no day token is recognized.
func CountWorkdays(raw string) int {
	norm := Normalize(raw)
	if norm == "" {
		return 0
	}

	var days [7]bool
	for _, part := range strings.FieldsFunc(norm, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '&'
	}) {
		toks := dowTokenRe.FindAllString(part, -1)
		isRange := strings.ContainsAny(part, "-–—") ||
			strings.Contains(part, " den ") || strings.Contains(part, " toi ")
		switch {
		case len(toks) >= 2 && isRange:
			a, aok := lookupDay(toks[0])
			b, bok := lookupDay(toks[len(toks)-1])
			if !aok || !bok {
				continue
			}
			for d := a; ; d = (d + 1) % 7 {
				days[d] = true
				if d == b {
					break
				}
			}
		default:
			for _, t := range toks {
				if d, ok := lookupDay(t); ok {
					days[d] = true
				}
			}
		}
	}

	n := 0
	for _, set := range days {
		if set {
			n++
		}
	}
	return n
}

// timeRangeRe captures "8h - 17h30", "08:00-17:00", "8 AM - 5:30 PM" and
// the like. Minutes and meridiem markers are optional on both sides.
var timeRangeRe = regexp.MustCompile(`(\d{1,2})(?:[:h](\d{2})?)?\s*(am|pm|sa|ch)?\s*[-–—]\s*(\d{1,2})(?:[:h](\d{2})?)?\s*(am|pm|sa|ch)?`)

func toHours(h, m int, meridiem string) float64 {
	switch meridiem {
	case "pm", "ch":
		if h < 12 {
			h += 12
		}
	case "am", "sa":
		if h == 12 {
			h = 0
		}
	}
	return float64(h) + float64(m)/60
}

func clockString(h float64) string {
	for h >= 24 {
		h -= 24
	}
	hh := int(h)
	mm := int(math.Round((h - float64(hh)) * 60))
	if mm == 60 {
		hh, mm = (hh+1)%24, 0
	}
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

func bestTimeRange(raw string) (start, end, span float64, ok bool) {
	norm := Normalize(raw)
	for _, m := range timeRangeRe.FindAllStringSubmatch(norm, -1) {
		h1, _ := strconv.Atoi(m[1])
		h2, _ := strconv.Atoi(m[4])
		if h1 > 24 || h2 > 24 {
			continue
		}
		min1, min2 := 0, 0
		if m[2] != "" {
			min1, _ = strconv.Atoi(m[2])
		}
		if m[5] != "" {
			min2, _ = strconv.Atoi(m[5])
		}
		s := toHours(h1, min1, m[3])
		e := toHours(h2, min2, m[6])
		if e < s {
			// Shift past midnight.
			e += 24
		}
		if d := e - s; d > span && d <= 24 {
			start, end, span, ok = s, e, d, true
		}
	}
	return start, end, span, ok
}

// LongestTimeSpan extracts every time range from a raw working-hours
// string and returns the longest span in hours, rounded to two decimals.
// A range ending before it starts is treated as running past midnight.
// Returns 0 when no range parses.
func LongestTimeSpan(raw string) float64 {
	_, _, span, ok := bestTimeRange(raw)
	if !ok {
		return 0
	}
	return math.Round(span*100) / 100
}

// LongestTimeRange returns the bounds of the longest time range in the
// text as HH:MM clock strings.
func LongestTimeRange(raw string) (start, end string, ok bool) {
	s, e, _, ok := bestTimeRange(raw)
	if !ok {
		return "", "", false
	}
	return clockString(s), clockString(e), true
}
