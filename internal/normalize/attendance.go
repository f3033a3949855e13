package normalize

import (
	"sort"
	"strconv"
	"time"

	"schoolapp-backend-go/internal/legacy"
)

// MarkStatus is the closed set of attendance marks. Anything the backend
// sends other than P or A collapses to NotMarked.
type MarkStatus string

const (
	MarkPresent   MarkStatus = "Present"
	MarkAbsent    MarkStatus = "Absent"
	MarkNotMarked MarkStatus = "NotMarked"
)

func MarkFromCode(code string) MarkStatus {
	switch code {
	case "P":
		return MarkPresent
	case "A":
		return MarkAbsent
	default:
		return MarkNotMarked
	}
}

// AttendanceDay is one calendar day with per-shift marks.
type AttendanceDay struct {
	Date      string                `json:"date"`
	DayOfWeek string                `json:"dayOfWeek,omitempty"`
	Marks     map[string]MarkStatus `json:"marks"`
}

// ShiftSummary is one shift's aggregate row.
type ShiftSummary struct {
	ShiftCode   string  `json:"shiftCode"`
	PresentDays int     `json:"presentDays"`
	AbsentDays  int     `json:"absentDays"`
	WorkingDays int     `json:"workingDays"`
	PresentPct  float64 `json:"presentPct"`
}

// AttendanceMonth is the normalized studentmonthattendance payload. The
// shifts legend maps shift codes to display names; SummaryByShift carries the
// backend's own per-shift aggregates for the month.
type AttendanceMonth struct {
	MonthVal       string            `json:"monthVal"`
	ShiftsByCode   map[string]string `json:"shiftsByCode"`
	Days           []AttendanceDay   `json:"days"`
	SummaryByShift []ShiftSummary    `json:"summaryByShift"`
	Present        int               `json:"present"`
	Absent         int               `json:"absent"`
}

// AttendanceMonthFrom requires a "data" object keyed by DD-MM-YYYY date; the
// shifts legend and monthSummary blocks are optional. Days sort
// chronologically; unparsable date keys sort last, lexically, so a bad key
// degrades ordering rather than dropping the day.
func AttendanceMonthFrom(payload any, monthVal string) (*AttendanceMonth, error) {
	root, ok := asMap(payload)
	if !ok {
		return nil, legacy.ErrMissingField("attendance data")
	}
	data, ok := asMap(root["data"])
	if !ok {
		return nil, legacy.ErrMissingField("attendance data")
	}

	month := &AttendanceMonth{
		MonthVal:     monthVal,
		ShiftsByCode: map[string]string{},
		Days:         make([]AttendanceDay, 0, len(data)),
	}
	if legend, ok := asMap(root["shifts"]); ok {
		for code, name := range legend {
			month.ShiftsByCode[code] = asString(name)
		}
	}
	for _, raw := range valueList(root["monthSummary"]) {
		if row, ok := asMap(raw); ok {
			if summary, ok := shiftSummaryFrom(row); ok {
				month.SummaryByShift = append(month.SummaryByShift, summary)
			}
		}
	}

	for dateKey, rawMarks := range data {
		marks, ok := asMap(rawMarks)
		if !ok {
			continue
		}
		day := AttendanceDay{Date: dateKey, Marks: make(map[string]MarkStatus, len(marks))}
		if parsed, err := time.Parse("02-01-2006", dateKey); err == nil {
			day.DayOfWeek = parsed.Weekday().String()
		}
		for shift, code := range marks {
			status := MarkFromCode(asString(code))
			day.Marks[shift] = status
			switch status {
			case MarkPresent:
				month.Present++
			case MarkAbsent:
				month.Absent++
			}
		}
		month.Days = append(month.Days, day)
	}

	sort.Slice(month.Days, func(i, j int) bool {
		ti, ei := time.Parse("02-01-2006", month.Days[i].Date)
		tj, ej := time.Parse("02-01-2006", month.Days[j].Date)
		if ei != nil || ej != nil {
			if (ei == nil) != (ej == nil) {
				return ei == nil
			}
			return month.Days[i].Date < month.Days[j].Date
		}
		return ti.Before(tj)
	})
	return month, nil
}

// AttendanceYearMonth groups one month's per-shift summaries.
type AttendanceYearMonth struct {
	MonthVal  string         `json:"monthVal"`
	MonthName string         `json:"monthName,omitempty"`
	Shifts    []ShiftSummary `json:"shifts"`
}

// AttendanceYear is the normalized stuattendancesummary payload: per-month
// shift summaries plus an overall percentage computed across everything.
type AttendanceYear struct {
	Months     []AttendanceYearMonth `json:"months"`
	OverallPct float64               `json:"overallPct"`
}

// AttendanceYearFrom expects {attendanceData: [rows], monthDetails:
// {monthVal: name}}. Rows group by their monthVal and take their display
// name from the monthDetails legend; a bare row list still parses, landing
// in a single unnamed month.
func AttendanceYearFrom(payload any) (*AttendanceYear, error) {
	rows := valueList(payload)
	monthNames := map[string]string{}
	if root, ok := asMap(payload); ok {
		if inner := valueList(root["attendanceData"]); inner != nil {
			rows = inner
		}
		if legend, ok := asMap(root["monthDetails"]); ok {
			for monthVal, name := range legend {
				monthNames[monthVal] = asString(name)
			}
		}
	}
	if rows == nil {
		return nil, legacy.ErrMissingField("attendance summary")
	}

	byMonth := map[string]*AttendanceYearMonth{}
	order := []string{}
	totalPresent, totalWorking := 0, 0
	for _, raw := range rows {
		row, ok := asMap(raw)
		if !ok {
			continue
		}
		summary, ok := shiftSummaryFrom(row)
		if !ok {
			continue
		}
		monthVal := firstString(row, "monthVal", "monthval")
		group := byMonth[monthVal]
		if group == nil {
			group = &AttendanceYearMonth{MonthVal: monthVal, MonthName: monthNames[monthVal]}
			byMonth[monthVal] = group
			order = append(order, monthVal)
		}
		group.Shifts = append(group.Shifts, summary)
		totalPresent += summary.PresentDays
		totalWorking += summary.WorkingDays
	}
	if len(byMonth) == 0 {
		return nil, legacy.ErrMissingField("attendance summary")
	}

	sort.Slice(order, func(i, j int) bool { return monthOrdinal(order[i]) < monthOrdinal(order[j]) })
	year := &AttendanceYear{Months: make([]AttendanceYearMonth, 0, len(order))}
	for _, monthVal := range order {
		year.Months = append(year.Months, *byMonth[monthVal])
	}
	if totalWorking > 0 {
		year.OverallPct = float64(totalPresent) / float64(totalWorking) * 100
	}
	return year, nil
}

func shiftSummaryFrom(row map[string]any) (ShiftSummary, bool) {
	code := firstString(row, "shiftcode", "shiftCode")
	if code == "" {
		return ShiftSummary{}, false
	}
	summary := ShiftSummary{ShiftCode: code}
	summary.PresentDays, _ = asInt(row["presentDays"])
	summary.AbsentDays, _ = asInt(row["absentDays"])
	summary.WorkingDays, _ = asInt(row["workingDays"])
	summary.PresentPct, _ = asFloat(row["presentPer"])
	return summary, true
}

// monthOrdinal sorts numeric monthVals numerically and pushes anything else,
// including the empty fallback group, to the end.
func monthOrdinal(monthVal string) int {
	if n, err := strconv.Atoi(monthVal); err == nil {
		return n
	}
	return 1 << 30
}

// extractRows pulls a row list out of payloads that are either the list
// itself or an object wrapping it under a "data" key.
func extractRows(payload any) []any {
	if rows := valueList(payload); rows != nil {
		if m, ok := asMap(payload); ok {
			if inner, exists := m["data"]; exists {
				return valueList(inner)
			}
		}
		return rows
	}
	return nil
}
