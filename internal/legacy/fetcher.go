package legacy

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a legacy response is read. The endpoints
// never legitimately return more than a few hundred KB.
const maxBodyBytes = 10 << 20

// Fetcher talks to the legacy PHP backend. Non-2xx statuses are not errors:
// the endpoints report failures inside the body, so the body is always read
// and handed to the classifier. Only transport failures surface as errors.
type Fetcher struct {
	client *http.Client
	base   string
}

func NewFetcher(base string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		base:   strings.TrimRight(base, "/"),
	}
}

// Get fetches path (relative to the configured base, or absolute when it
// starts with http) and returns the raw body text.
func (f *Fetcher) Get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.resolve(path), nil)
	if err != nil {
		return "", ErrNetwork(err)
	}
	return f.do(req)
}

// PostForm sends fields as multipart/form-data, matching what the legacy
// endpoints expect from the app's form submissions.
func (f *Fetcher) PostForm(ctx context.Context, path string, fields map[string]string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", ErrNetwork(err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", ErrNetwork(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.resolve(path), &buf)
	if err != nil {
		return "", ErrNetwork(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) (string, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		fetchFailures.Inc()
		return "", ErrNetwork(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		fetchFailures.Inc()
		return "", ErrNetwork(err)
	}
	fetchTotal.Inc()
	return string(body), nil
}

func (f *Fetcher) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return f.base + "/" + strings.TrimLeft(path, "/")
}
