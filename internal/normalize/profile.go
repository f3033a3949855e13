package normalize

import (
	"schoolapp-backend-go/internal/legacy"
)

// StudentProfile is the normalized studentprofile payload.
type StudentProfile struct {
	StudentID       string `json:"studentId,omitempty"`
	Name            string `json:"name"`
	Surname         string `json:"surname,omitempty"`
	ClassName       string `json:"className,omitempty"`
	Section         string `json:"section,omitempty"`
	GroupName       string `json:"groupName,omitempty"`
	RollNumber      string `json:"rollNumber,omitempty"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	FatherName      string `json:"fatherName,omitempty"`
	MotherName      string `json:"motherName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	PhotoURL        string `json:"photoUrl,omitempty"`
	AdmissionNum    string `json:"admissionNumber,omitempty"`
	ModeOfAdmission string `json:"modeOfAdmission,omitempty"`
}

// StudentProfileFrom accepts the studentprofile payload, which arrives as an
// array of one row (or the row itself, or an index-keyed object of one).
func StudentProfileFrom(payload any) (*StudentProfile, error) {
	var row map[string]any
	if m, ok := asMap(payload); ok {
		if _, hasData := m["data"]; hasData || looksLikeIndexMap(m) {
			rows := extractRows(payload)
			if len(rows) > 0 {
				row, _ = asMap(rows[0])
			}
		} else {
			row = m
		}
	} else if rows := valueList(payload); len(rows) > 0 {
		row, _ = asMap(rows[0])
	}
	if row == nil {
		return nil, legacy.ErrMissingField("student profile")
	}

	profile := &StudentProfile{
		StudentID:       firstString(row, "seqStudentId", "studentId", "id"),
		Name:            firstString(row, "name", "studentName"),
		Surname:         firstString(row, "surname"),
		ClassName:       firstString(row, "className", "class"),
		Section:         firstString(row, "sectionName", "section"),
		GroupName:       firstString(row, "groupName"),
		RollNumber:      firstString(row, "rollNo", "rollNumber"),
		DateOfBirth:     firstString(row, "dob", "dateOfBirth"),
		FatherName:      firstString(row, "fatherName"),
		MotherName:      firstString(row, "motherName"),
		Phone:           firstString(row, "mobileNo", "phone", "mobile", "contactNo"),
		Address:         firstString(row, "address"),
		PhotoURL:        RepairImageURL(firstString(row, "stuphoto", "studentImage", "photo", "image")),
		AdmissionNum:    firstString(row, "admissionNo", "admissionNumber"),
		ModeOfAdmission: firstString(row, "modeOfAdmission"),
	}
	if profile.StudentID == "" && profile.Name == "" {
		return nil, legacy.ErrMissingField("student profile")
	}
	return profile, nil
}

// looksLikeIndexMap reports whether every value of m is itself an object,
// the shape the backend uses when it means "array".
func looksLikeIndexMap(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}
	return true
}
