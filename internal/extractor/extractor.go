package extractor

import (
	"context"
	"os"
)

// Request describes one extraction attempt.
type Request struct {
	URL         string // normalized page URL, also sent as the referer
	CookiesPath string // optional cookie-jar file for the source site
	UserAgent   string
}

// Media is a successfully extracted file. The whole Dir belongs to
// the request and is removed by Cleanup.
type Media struct {
	Path  string
	Dir   string
	Title string
}

// Cleanup removes the downloaded file and its containing dir. Safe
// to call on any Media, including one whose file is already gone.
func (m *Media) Cleanup() {
	if m == nil {
		return
	}
	if m.Dir != "" {
		os.RemoveAll(m.Dir)
		return
	}
	if m.Path != "" {
		os.Remove(m.Path)
	}
}

// Error is returned when the extraction library rejects a URL.
// Reason is safe to log, callers show users a generic message.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return "extraction failed: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extractor resolves a page URL into a downloaded media file.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Media, error)
}
