package schema

import "testing"

func TestCanonicalNames(t *testing.T) {
	if m, ok := CanonicalMonth("march"); !ok || m != "March" {
		t.Errorf("CanonicalMonth(march) = %q, %v", m, ok)
	}
	if _, ok := CanonicalMonth("Smarch"); ok {
		t.Error("Smarch is not a month")
	}
	if MonthIndex("DECEMBER") != 12 {
		t.Errorf("MonthIndex(DECEMBER) = %d", MonthIndex("DECEMBER"))
	}
	if d, ok := CanonicalWeekday("sunday"); !ok || d != "Sunday" {
		t.Errorf("CanonicalWeekday(sunday) = %q, %v", d, ok)
	}
	if _, ok := CanonicalWeekday("Funday"); ok {
		t.Error("Funday is not a weekday")
	}
}
