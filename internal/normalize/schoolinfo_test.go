package normalize

import "testing"

func TestSchoolInfoFrom(t *testing.T) {
	payload := decode(t, `{
		"branch": {"MB": "Main Branch", "CB": "City Branch"},
		"activities": [
			{"activityId": "1", "activityName": "Quiz Week", "activityImage": "abc.com#b#x.jpg"}
		]
	}`)
	info, err := SchoolInfoFrom(payload)
	if err != nil {
		t.Fatalf("SchoolInfoFrom: %v", err)
	}
	if len(info.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(info.Branches))
	}
	if info.Branches[0].Code != "CB" || info.Branches[1].Name != "Main Branch" {
		t.Fatalf("branches not sorted by code: %#v", info.Branches)
	}
	if len(info.Activities) != 1 || info.Activities[0].ImageURL != "https://abc.com/b/x.jpg" {
		t.Fatalf("activities not normalized: %#v", info.Activities)
	}
}

func TestSchoolInfoFromToleratesMissingActivities(t *testing.T) {
	info, err := SchoolInfoFrom(decode(t, `{"branch": {"MB": "Main"}}`))
	if err != nil {
		t.Fatalf("SchoolInfoFrom: %v", err)
	}
	if len(info.Activities) != 0 {
		t.Fatalf("expected no activities")
	}
}

func TestSchoolInfoFromRequiresBranches(t *testing.T) {
	if _, err := SchoolInfoFrom(decode(t, `{"activities": []}`)); err == nil {
		t.Fatalf("expected error without branch map")
	}
}
