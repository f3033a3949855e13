package normalize

import "testing"

func TestExamResultSetFrom(t *testing.T) {
	payload := decode(t, `{
		"examType": {"S": "Weekly Schedules"},
		"data": {
			"S": {
				"subjects": {"m1": "Maths", "p1": "Physics"},
				"examMarks": {
					"week1": {
						"examName": "Week 1",
						"examDate": "05-08-2025",
						"totalGainedMarks": "45",
						"totalMaxMarks": 50,
						"percentage": 90,
						"subjectMarks": {
							"m1": {"gainedMarks": 25, "maxMarks": 25, "subStatus": "Pass"},
							"p1": {"gainedMarks": "20", "maxMarks": 25, "subStatus": "Pass"}
						}
					}
				}
			}
		}
	}`)
	set, err := ExamResultSetFrom(payload)
	if err != nil {
		t.Fatalf("ExamResultSetFrom: %v", err)
	}
	if set.TypeLabels["S"] != "Weekly Schedules" {
		t.Fatalf("backend label not kept: %q", set.TypeLabels["S"])
	}
	// Missing legend entries fall back to the defaults.
	if set.TypeLabels["U"] != "Units" || set.TypeLabels["C"] != "Competitive" {
		t.Fatalf("default labels missing: %#v", set.TypeLabels)
	}
	if len(set.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(set.Groups))
	}
	group := set.Groups[0]
	if len(group.Subjects) != 2 || len(group.Exams) != 1 {
		t.Fatalf("group shape wrong: %+v", group)
	}
	exam := group.Exams[0]
	if exam.GainedMarks != 45 {
		t.Fatalf("string marks not parsed: %v", exam.GainedMarks)
	}
	if len(exam.SubjectMarks) != 2 {
		t.Fatalf("expected 2 subject marks, got %d", len(exam.SubjectMarks))
	}
	// Marks join back to subject names through the shared ids.
	for _, mark := range exam.SubjectMarks {
		if group.Subjects[mark.SubjectID] == "" {
			t.Fatalf("subject mark %q has no name in the legend %v", mark.SubjectID, group.Subjects)
		}
	}
	if group.Subjects["m1"] != "Maths" {
		t.Fatalf("subject legend wrong: %v", group.Subjects)
	}
}

func TestExamResultSetFromComputesPercentage(t *testing.T) {
	payload := decode(t, `{
		"data": {
			"T": {
				"examMarks": {
					"t1": {"examName": "Term 1", "totalGainedMarks": 30, "totalMaxMarks": 40}
				}
			}
		}
	}`)
	set, err := ExamResultSetFrom(payload)
	if err != nil {
		t.Fatalf("ExamResultSetFrom: %v", err)
	}
	if got := set.Groups[0].Exams[0].Percentage; got != 75 {
		t.Fatalf("computed percentage = %v, want 75", got)
	}
}

func TestExamResultSetFromMissingData(t *testing.T) {
	if _, err := ExamResultSetFrom(decode(t, `{"examType": {}}`)); err == nil {
		t.Fatalf("expected error without data block")
	}
}
