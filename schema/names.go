package schema

import "strings"

// MonthNames in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Weekdays in planner order, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MonthIndex returns the 1-based month number of a case-insensitive month name, or 0.
func MonthIndex(name string) int {
	for i, m := range MonthNames {
		if strings.EqualFold(m, name) {
			return i + 1
		}
	}
	return 0
}

// CanonicalMonth returns the month name with canonical casing.
func CanonicalMonth(name string) (string, bool) {
	if i := MonthIndex(name); i > 0 {
		return MonthNames[i-1], true
	}
	return "", false
}

// CanonicalWeekday returns the weekday name with canonical casing.
func CanonicalWeekday(name string) (string, bool) {
	for _, d := range Weekdays {
		if strings.EqualFold(d, name) {
			return d, true
		}
	}
	return "", false
}
