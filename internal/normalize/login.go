package normalize

import (
	"schoolapp-backend-go/internal/legacy"
)

// LoginResult is the normalized logincheck payload. The backend decides the
// student's branch; it arrives alongside the credentials check.
type LoginResult struct {
	OK        bool   `json:"ok"`
	StudentID string `json:"studentId,omitempty"`
	UserName  string `json:"userName,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Message   string `json:"message,omitempty"`
}

// LoginResultFrom treats Status==1 (number or string) as an accepted login.
// Anything else is a rejection with whatever message the backend offered.
func LoginResultFrom(payload any) (*LoginResult, error) {
	m, ok := asMap(payload)
	if !ok {
		return nil, legacy.ErrMissingField("login result")
	}
	status, _ := asInt(firstNonNil(m, "Status", "status"))
	if status != 1 {
		message := firstString(m, "message", "Message", "error")
		if message == "" {
			message = "Invalid login ID or password"
		}
		return &LoginResult{OK: false, Message: message}, nil
	}
	return &LoginResult{
		OK:        true,
		StudentID: firstString(m, "seqStudentId", "studentId"),
		UserName:  firstString(m, "UserName", "userName", "studentName", "name"),
		Branch:    firstString(m, "branch", "Branch"),
	}, nil
}
