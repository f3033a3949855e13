package normalize

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestMarkFromCode(t *testing.T) {
	cases := map[string]MarkStatus{
		"P":  MarkPresent,
		"A":  MarkAbsent,
		"":   MarkNotMarked,
		"L":  MarkNotMarked,
		"p":  MarkNotMarked,
		"??": MarkNotMarked,
	}
	for code, want := range cases {
		if got := MarkFromCode(code); got != want {
			t.Fatalf("MarkFromCode(%q) = %s, want %s", code, got, want)
		}
	}
}

func TestAttendanceMonthFrom(t *testing.T) {
	payload := decode(t, `{
		"data": {
			"15-01-2025": {"M": "P", "E": "A"},
			"02-01-2025": {"M": "P"},
			"20-01-2025": {"M": "X"}
		},
		"shifts": {"M": "Morning", "E": "Evening"},
		"monthSummary": [
			{"shiftcode": "M", "presentDays": 2, "absentDays": 1, "workingDays": 3, "presentPer": "66.7"},
			{"shiftcode": "E", "presentDays": 0, "absentDays": 1, "workingDays": 1, "presentPer": 0}
		]
	}`)
	month, err := AttendanceMonthFrom(payload, "2025-01")
	if err != nil {
		t.Fatalf("AttendanceMonthFrom: %v", err)
	}
	if len(month.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(month.Days))
	}
	if month.Days[0].Date != "02-01-2025" || month.Days[2].Date != "20-01-2025" {
		t.Fatalf("days not sorted chronologically: %v", month.Days)
	}
	if month.Days[0].DayOfWeek != "Thursday" {
		t.Fatalf("dayOfWeek = %q, want Thursday for 02-01-2025", month.Days[0].DayOfWeek)
	}
	if month.Present != 2 || month.Absent != 1 {
		t.Fatalf("counts = %d present / %d absent, want 2/1", month.Present, month.Absent)
	}
	if month.Days[2].Marks["M"] != MarkNotMarked {
		t.Fatalf("unknown code must map to NotMarked")
	}
	if month.ShiftsByCode["M"] != "Morning" || month.ShiftsByCode["E"] != "Evening" {
		t.Fatalf("shifts legend lost: %v", month.ShiftsByCode)
	}
	if len(month.SummaryByShift) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(month.SummaryByShift))
	}
	if month.SummaryByShift[0].ShiftCode != "M" || month.SummaryByShift[0].PresentPct != 66.7 {
		t.Fatalf("summary row wrong: %+v", month.SummaryByShift[0])
	}
}

func TestAttendanceMonthFromMissingData(t *testing.T) {
	if _, err := AttendanceMonthFrom(decode(t, `{"other": 1}`), "2025-01"); err == nil {
		t.Fatalf("expected error for payload without data field")
	}
	if _, err := AttendanceMonthFrom(decode(t, `[1,2]`), "2025-01"); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}

func TestAttendanceYearFrom(t *testing.T) {
	payload := decode(t, `{
		"attendanceData": [
			{"monthVal": "6", "shiftcode": "M", "presentDays": 20, "absentDays": 2, "workingDays": 22, "presentPer": "90.9"},
			{"monthVal": "6", "shiftcode": "E", "presentDays": "18", "absentDays": 4, "workingDays": 22, "presentPer": 81.8},
			{"monthVal": "7", "shiftcode": "M", "presentDays": 10, "absentDays": 0, "workingDays": 10, "presentPer": 100}
		],
		"monthDetails": {"6": "June", "7": "July"}
	}`)
	year, err := AttendanceYearFrom(payload)
	if err != nil {
		t.Fatalf("AttendanceYearFrom: %v", err)
	}
	if len(year.Months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(year.Months))
	}
	june := year.Months[0]
	if june.MonthVal != "6" || june.MonthName != "June" {
		t.Fatalf("month legend not applied: %+v", june)
	}
	if len(june.Shifts) != 2 || year.Months[1].MonthName != "July" {
		t.Fatalf("rows not grouped by monthVal: %+v", year.Months)
	}
	// Numbers arriving as strings still parse.
	if june.Shifts[0].PresentPct != 90.9 {
		t.Fatalf("string percentage not parsed: %v", june.Shifts[0].PresentPct)
	}
	if june.Shifts[1].PresentDays != 18 {
		t.Fatalf("string presentDays not parsed: %v", june.Shifts[1].PresentDays)
	}
	want := float64(48) / float64(54) * 100
	if year.OverallPct != want {
		t.Fatalf("overall = %v, want %v", year.OverallPct, want)
	}
}

func TestAttendanceYearFromBareRowList(t *testing.T) {
	// Older backends answer with the row list alone.
	payload := decode(t, `[
		{"shiftcode": "M", "presentDays": 5, "absentDays": 0, "workingDays": 5, "presentPer": 100}
	]`)
	year, err := AttendanceYearFrom(payload)
	if err != nil {
		t.Fatalf("AttendanceYearFrom: %v", err)
	}
	if len(year.Months) != 1 || year.Months[0].Shifts[0].ShiftCode != "M" {
		t.Fatalf("bare row list not handled: %#v", year.Months)
	}
}

func TestAttendanceYearFromMissingRows(t *testing.T) {
	if _, err := AttendanceYearFrom(decode(t, `{"monthDetails": {"6": "June"}}`)); err == nil {
		t.Fatalf("expected error without attendanceData rows")
	}
}
