package cache

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoDate   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2})\b`)
	dotDate   = regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{2})\b`)
)

// YearRewriter moves dates and year asset paths from one year to another.
// Days past the end of the month in the new year (Feb 29) become the last day.
type YearRewriter struct {
	newYear            int
	oldFull, newFull   string
	oldShort, newShort string
	yearPath           *regexp.Regexp
}

func NewYearRewriter(oldYear, newYear int) *YearRewriter {
	return &YearRewriter{
		newYear:  newYear,
		oldFull:  strconv.Itoa(oldYear),
		newFull:  strconv.Itoa(newYear),
		oldShort: fmt.Sprintf("%02d", oldYear%100),
		newShort: fmt.Sprintf("%02d", newYear%100),
		yearPath: regexp.MustCompile(`(yearly_plans/year/)` + strconv.Itoa(oldYear) + `\b`),
	}
}

// clampDay returns day, or the last day of month in year when day is past it.
func clampDay(year int, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 {
		return day
	}
	last := time.Date(year, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d <= last {
		return day
	}
	return strconv.Itoa(last)
}

// String rewrites one string: ISO dates (including "Week starting" keys),
// M/D/YY and DD.MM.YY dates, and yearly_plans/year/<year> paths.
func (r *YearRewriter) String(s string) string {
	s = isoDate.ReplaceAllStringFunc(s, func(m string) string {
		p := isoDate.FindStringSubmatch(m)
		if p[1] != r.oldFull {
			return m
		}
		day := clampDay(r.newYear, p[2], p[3])
		return r.newFull + "-" + p[2] + "-" + day
	})
	s = slashDate.ReplaceAllStringFunc(s, func(m string) string {
		p := slashDate.FindStringSubmatch(m)
		if p[3] != r.oldShort {
			return m
		}
		day := clampDay(r.newYear, p[1], p[2])
		return p[1] + "/" + day + "/" + r.newShort
	})
	s = dotDate.ReplaceAllStringFunc(s, func(m string) string {
		p := dotDate.FindStringSubmatch(m)
		if p[3] != r.oldShort {
			return m
		}
		day := clampDay(r.newYear, p[2], p[1])
		return day + "." + p[2] + "." + r.newShort
	})
	return r.yearPath.ReplaceAllString(s, "${1}"+r.newFull)
}

// Rewrite walks decoded JSON and rewrites every object key and string value.
// Keys that collide after clamping have their lists merged.
func (r *YearRewriter) Rewrite(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key, val := r.String(k), r.Rewrite(val)
			if prev, ok := out[key].([]any); ok {
				if list, ok := val.([]any); ok {
					val = append(prev, list...)
				}
			}
			out[key] = val
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = r.Rewrite(val)
		}
		return t
	case string:
		return r.String(t)
	default:
		return v
	}
}
