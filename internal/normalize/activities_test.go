package normalize

import "testing"

func TestRepairImageURL(t *testing.T) {
	cases := map[string]string{
		"abc.com#images#pic.jpg":         "https://abc.com/images/pic.jpg",
		"https://abc.com/images/pic.jpg": "https://abc.com/images/pic.jpg",
		"http://abc.com#a#b.png":         "http://abc.com/a/b.png",
		"":                               "",
		"   ":                            "",
	}
	for in, want := range cases {
		if got := RepairImageURL(in); got != want {
			t.Fatalf("RepairImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInferCategory(t *testing.T) {
	cases := map[string]string{
		"Annual Science Exhibition": "science",
		"Inter-school Quiz Finals":  "quiz",
		"Cultural Day Celebrations": "cultural",
		"Sports Meet":               "general",
	}
	for title, want := range cases {
		if got := InferCategory(title); got != want {
			t.Fatalf("InferCategory(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestActivitiesFromDropsMissingIDs(t *testing.T) {
	payload := decode(t, `[
		{"activityId": "7", "activityName": "Quiz Week", "subject": "Inter-house rounds daily", "activityImage": "abc.com#img#q.jpg"},
		{"activityName": "No ID here"},
		{"activityId": 12, "activityName": "Science Fair"}
	]`)
	items, err := ActivitiesFrom(payload)
	if err != nil {
		t.Fatalf("ActivitiesFrom: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("row without id must be dropped, got %d items", len(items))
	}
	if items[0].Title != "Quiz Week" {
		t.Fatalf("activityName not read as the title: %q", items[0].Title)
	}
	if items[0].Description != "Inter-house rounds daily" {
		t.Fatalf("subject not read as the description: %q", items[0].Description)
	}
	if items[0].ImageURL != "https://abc.com/img/q.jpg" {
		t.Fatalf("image not repaired: %q", items[0].ImageURL)
	}
	if items[0].Category != "quiz" || items[1].Category != "science" {
		t.Fatalf("categories = %q, %q", items[0].Category, items[1].Category)
	}
	// Numeric ids survive as strings.
	if items[1].ID != "12" {
		t.Fatalf("numeric id not coerced: %q", items[1].ID)
	}
}
