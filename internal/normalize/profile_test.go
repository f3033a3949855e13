package normalize

import "testing"

func TestStudentProfileFromArrayOfOne(t *testing.T) {
	payload := decode(t, `[{
		"name": "Asha",
		"surname": "Rao",
		"fatherName": "Mohan",
		"mobileNo": "9876543210",
		"address": "12 Lake Road",
		"className": "VII",
		"groupName": "MPC",
		"sectionName": "B",
		"admissionNo": "A-1042",
		"stuphoto": "abc.com#photos#st42.jpg",
		"modeOfAdmission": "Regular"
	}]`)
	profile, err := StudentProfileFrom(payload)
	if err != nil {
		t.Fatalf("StudentProfileFrom: %v", err)
	}
	if profile.Name != "Asha" || profile.Surname != "Rao" {
		t.Fatalf("name fields not extracted: %+v", profile)
	}
	if profile.Phone != "9876543210" {
		t.Fatalf("mobileNo not read: %q", profile.Phone)
	}
	if profile.Section != "B" || profile.GroupName != "MPC" {
		t.Fatalf("section/group not read: %+v", profile)
	}
	if profile.AdmissionNum != "A-1042" || profile.ModeOfAdmission != "Regular" {
		t.Fatalf("admission fields not read: %+v", profile)
	}
	if profile.PhotoURL != "https://abc.com/photos/st42.jpg" {
		t.Fatalf("photo not repaired: %q", profile.PhotoURL)
	}
}

func TestStudentProfileFromBareObject(t *testing.T) {
	profile, err := StudentProfileFrom(decode(t, `{"seqStudentId": "ST1", "studentName": "Ravi"}`))
	if err != nil {
		t.Fatalf("StudentProfileFrom: %v", err)
	}
	if profile.StudentID != "ST1" {
		t.Fatalf("bare object shape not handled: %+v", profile)
	}
}

func TestStudentProfileFromEmpty(t *testing.T) {
	if _, err := StudentProfileFrom(decode(t, `[]`)); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := StudentProfileFrom(decode(t, `{"seqStudentId": "", "studentName": ""}`)); err == nil {
		t.Fatalf("expected error when id and name are both empty")
	}
}

func TestLoginResultFrom(t *testing.T) {
	ok, err := LoginResultFrom(decode(t, `{"Status": "1", "seqStudentId": "ST9", "UserName": "Mira", "branch": "MB"}`))
	if err != nil {
		t.Fatalf("LoginResultFrom: %v", err)
	}
	if !ok.OK || ok.StudentID != "ST9" || ok.UserName != "Mira" {
		t.Fatalf("login result wrong: %+v", ok)
	}
	if ok.Branch != "MB" {
		t.Fatalf("branch from the backend lost: %+v", ok)
	}

	rejected, err := LoginResultFrom(decode(t, `{"Status": 0, "message": "Invalid credentials"}`))
	if err != nil {
		t.Fatalf("LoginResultFrom: %v", err)
	}
	if rejected.OK || rejected.Message != "Invalid credentials" {
		t.Fatalf("rejection wrong: %+v", rejected)
	}
}
