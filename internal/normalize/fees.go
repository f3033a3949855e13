package normalize

import (
	"regexp"

	"schoolapp-backend-go/internal/legacy"
)

var totalRowPattern = regexp.MustCompile(`(?i)total`)

// FeeLine is one normalized fee head with its committed, paid and outstanding
// amounts.
type FeeLine struct {
	Name      string  `json:"name"`
	Committed float64 `json:"committed"`
	Paid      float64 `json:"paid"`
	Due       float64 `json:"due"`
}

// FeeTotal aggregates the three amounts across all fee heads.
type FeeTotal struct {
	Committed float64 `json:"committed"`
	Paid      float64 `json:"paid"`
	Due       float64 `json:"due"`
}

// FeeSchedule is the normalized studentfees payload. TotalIsComputed is true
// when the backend sent no totals row and the totals had to be summed from
// the line items.
type FeeSchedule struct {
	LineItems       []FeeLine `json:"lineItems"`
	Total           FeeTotal  `json:"total"`
	TotalIsComputed bool      `json:"totalIsComputed"`
}

// FeeScheduleFrom accepts either an array of rows carrying their own FeeName,
// or an object keyed by fee name. A row or key matching "total"
// (case-insensitive) supplies the schedule totals and is excluded from the
// line items; when no such row exists the totals are summed from the items.
// Backend-provided totals win even when they disagree with the item sums.
func FeeScheduleFrom(payload any) (*FeeSchedule, error) {
	schedule := &FeeSchedule{LineItems: []FeeLine{}}
	foundTotal := false

	add := func(name string, row map[string]any) {
		line := FeeLine{Name: name}
		line.Committed, _ = asFloat(firstNonNil(row, "Committed", "committed"))
		line.Paid, _ = asFloat(firstNonNil(row, "Paid", "paid"))
		line.Due, _ = asFloat(firstNonNil(row, "Due", "due"))
		if name == "" {
			return
		}
		if totalRowPattern.MatchString(name) {
			schedule.Total = FeeTotal{Committed: line.Committed, Paid: line.Paid, Due: line.Due}
			foundTotal = true
			return
		}
		schedule.LineItems = append(schedule.LineItems, line)
	}

	switch {
	case rowsCarryFeeNames(payload):
		for _, raw := range valueList(payload) {
			row, ok := asMap(raw)
			if !ok {
				continue
			}
			add(firstString(row, "FeeName", "feeName", "feename"), row)
		}
	default:
		m, ok := asMap(payload)
		if !ok {
			return nil, legacy.ErrMissingField("fee details")
		}
		// Object keyed by fee name; amounts live in the values.
		for name, raw := range m {
			row, ok := asMap(raw)
			if !ok {
				continue
			}
			add(name, row)
		}
	}

	if len(schedule.LineItems) == 0 && !foundTotal {
		return nil, legacy.ErrMissingField("fee details")
	}
	if !foundTotal {
		for _, line := range schedule.LineItems {
			schedule.Total.Committed += line.Committed
			schedule.Total.Paid += line.Paid
			schedule.Total.Due += line.Due
		}
		schedule.TotalIsComputed = true
	}
	return schedule, nil
}

// rowsCarryFeeNames reports whether the payload is a row list (array or
// index-keyed object) whose rows name themselves via a FeeName field, as
// opposed to an object whose keys are the fee names.
func rowsCarryFeeNames(payload any) bool {
	if _, ok := payload.([]any); ok {
		return true
	}
	m, ok := asMap(payload)
	if !ok {
		return false
	}
	for _, raw := range m {
		if row, ok := asMap(raw); ok {
			if firstString(row, "FeeName", "feeName", "feename") != "" {
				return true
			}
		}
	}
	return false
}

func firstNonNil(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
