package legacy

import (
	"context"
	"net/url"
	"strings"
)

// Client wraps the individual PHP endpoints of the legacy backend. Each call
// returns the decoded payload of a valid (possibly salvaged) JSON body, or a
// taxonomy error describing why no payload could be produced.
type Client struct {
	fetcher *Fetcher
}

func NewClient(fetcher *Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

func (c *Client) LoginCheck(ctx context.Context, loginID, password string) (any, error) {
	return c.getJSON(ctx, "logincheck.php", url.Values{
		"loginId":  {loginID},
		"password": {password},
	})
}

func (c *Client) MonthAttendance(ctx context.Context, studentID, branch, monthVal string) (any, error) {
	return c.getJSON(ctx, "studentmonthattendance.php", url.Values{
		"seqStudentId": {studentID},
		"branch":       {branch},
		"monthVal":     {monthVal},
	})
}

// AttendanceSummary takes no branch; the yearly summary endpoint keys on the
// student alone.
func (c *Client) AttendanceSummary(ctx context.Context, studentID string) (any, error) {
	return c.getJSON(ctx, "stuattendancesummary.php", url.Values{
		"seqStudentId": {studentID},
	})
}

func (c *Client) Fees(ctx context.Context, studentID, branch string) (any, error) {
	return c.getJSON(ctx, "studentfees.php", url.Values{
		"seqStudentId": {studentID},
		"branch":       {branch},
	})
}

// ExamResults always sends an examType even though the backend answers with
// every type; the endpoint rejects requests without the parameter.
func (c *Client) ExamResults(ctx context.Context, studentID, branch, examType string) (any, error) {
	return c.getJSON(ctx, "studentexamresults.php", url.Values{
		"seqStudentId": {studentID},
		"branch":       {branch},
		"examType":     {examType},
	})
}

func (c *Client) Activities(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "allactivities.php", nil)
}

func (c *Client) Circulars(ctx context.Context, studentID, branch string) (any, error) {
	return c.getJSON(ctx, "classcirculars.php", url.Values{
		"seqStudentId": {studentID},
		"branch":       {branch},
	})
}

func (c *Client) Profile(ctx context.Context, studentID, branch string) (any, error) {
	return c.getJSON(ctx, "studentprofile.php", url.Values{
		"seqStudentId": {studentID},
		"branch":       {branch},
	})
}

func (c *Client) HomePage(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "apphomepage.php", nil)
}

// UpdatePassword posts the change as multipart form data. The endpoint takes
// only the replacement password; it does not verify the old one. It also
// sometimes answers with a bare text line instead of JSON; that text is kept
// as a message payload rather than rejected, because it usually explains the
// failure.
func (c *Client) UpdatePassword(ctx context.Context, studentID, branch, newPassword string) (any, error) {
	raw, err := c.fetcher.PostForm(ctx, "updatestudentpw.php", map[string]string{
		"branch":       branch,
		"seqStudentId": studentID,
		"password":     newPassword,
	})
	if err != nil {
		return nil, err
	}
	classified := Classify(raw)
	ObserveClassification(classified)
	switch classified.Kind {
	case KindValidJSON:
		return classified.Payload, nil
	case KindEmptyBody:
		return nil, ErrEmptyBody()
	case KindHTMLErrorPage:
		return nil, ErrHTMLErrorPage()
	default:
		return map[string]any{"message": strings.TrimSpace(raw)}, nil
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) (any, error) {
	path := endpoint
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	raw, err := c.fetcher.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	classified := Classify(raw)
	ObserveClassification(classified)
	switch classified.Kind {
	case KindValidJSON:
		return classified.Payload, nil
	case KindEmptyBody:
		return nil, ErrEmptyBody()
	case KindHTMLErrorPage:
		return nil, ErrHTMLErrorPage()
	default:
		return nil, ErrMalformedJSON()
	}
}
