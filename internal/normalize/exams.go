package normalize

import (
	"sort"

	"schoolapp-backend-go/internal/legacy"
)

// defaultExamTypes backfills the type legend when the backend omits it.
var defaultExamTypes = map[string]string{
	"S": "Schedules",
	"U": "Units",
	"T": "Terms",
	"C": "Competitive",
}

// SubjectMark is one subject's score within an exam.
type SubjectMark struct {
	SubjectID   string  `json:"subjectId"`
	GainedMarks float64 `json:"gainedMarks"`
	MaxMarks    float64 `json:"maxMarks"`
	Status      string  `json:"status,omitempty"`
}

// ExamResult is one exam occurrence with its subject breakdown.
type ExamResult struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	Date         string        `json:"date,omitempty"`
	GainedMarks  float64       `json:"gainedMarks"`
	MaxMarks     float64       `json:"maxMarks"`
	Percentage   float64       `json:"percentage"`
	SubjectMarks []SubjectMark `json:"subjectMarks"`
}

// ExamGroup holds the exams of one type code (S, U, T, C). Subjects maps
// subject id to display name, the same ids subjectMarks are keyed by.
type ExamGroup struct {
	Code     string            `json:"code"`
	Subjects map[string]string `json:"subjects"`
	Exams    []ExamResult      `json:"exams"`
}

// ExamResultSet is the normalized studentexamresults payload.
type ExamResultSet struct {
	TypeLabels map[string]string `json:"typeLabels"`
	Groups     []ExamGroup       `json:"groups"`
}

// ExamResultSetFrom expects {examType: {code: label}, data: {code: group}}.
// The type legend is optional; groups with no recognizable exams are kept
// empty rather than dropped so the app can still render the tab.
func ExamResultSetFrom(payload any) (*ExamResultSet, error) {
	root, ok := asMap(payload)
	if !ok {
		return nil, legacy.ErrMissingField("exam results")
	}
	data, ok := asMap(root["data"])
	if !ok {
		return nil, legacy.ErrMissingField("exam results")
	}

	set := &ExamResultSet{TypeLabels: make(map[string]string)}
	if legend, ok := asMap(root["examType"]); ok {
		for code, label := range legend {
			set.TypeLabels[code] = asString(label)
		}
	}
	for code, label := range defaultExamTypes {
		if set.TypeLabels[code] == "" {
			set.TypeLabels[code] = label
		}
	}

	codes := make([]string, 0, len(data))
	for code := range data {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		groupMap, ok := asMap(data[code])
		if !ok {
			continue
		}
		group := ExamGroup{Code: code, Subjects: map[string]string{}}
		if subjects, ok := asMap(groupMap["subjects"]); ok {
			for id, name := range subjects {
				group.Subjects[id] = asString(name)
			}
		}
		if marks, ok := asMap(groupMap["examMarks"]); ok {
			keys := make([]string, 0, len(marks))
			for key := range marks {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				if exam, ok := examResultFrom(key, marks[key]); ok {
					group.Exams = append(group.Exams, exam)
				}
			}
		}
		set.Groups = append(set.Groups, group)
	}
	return set, nil
}

func examResultFrom(key string, raw any) (ExamResult, bool) {
	m, ok := asMap(raw)
	if !ok {
		return ExamResult{}, false
	}
	exam := ExamResult{
		Key:  key,
		Name: firstString(m, "examName", "examname"),
		Date: firstString(m, "examDate", "examdate"),
	}
	exam.GainedMarks, _ = asFloat(m["totalGainedMarks"])
	exam.MaxMarks, _ = asFloat(m["totalMaxMarks"])
	exam.Percentage, _ = asFloat(m["percentage"])
	if exam.Percentage == 0 && exam.MaxMarks > 0 {
		exam.Percentage = exam.GainedMarks / exam.MaxMarks * 100
	}

	if subjects, ok := asMap(m["subjectMarks"]); ok {
		ids := make([]string, 0, len(subjects))
		for id := range subjects {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			sm, ok := asMap(subjects[id])
			if !ok {
				continue
			}
			mark := SubjectMark{SubjectID: id, Status: firstString(sm, "subStatus", "status")}
			mark.GainedMarks, _ = asFloat(sm["gainedMarks"])
			mark.MaxMarks, _ = asFloat(sm["maxMarks"])
			exam.SubjectMarks = append(exam.SubjectMarks, mark)
		}
	}
	return exam, true
}
