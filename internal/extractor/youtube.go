package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

var youtubeIDRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`)

var unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// YouTubeExtractor downloads directly through the YouTube API
// client instead of spawning yt-dlp. YouTube never needs user
// cookies, so it skips the credential machinery entirely.
type YouTubeExtractor struct {
	client  youtube.Client
	baseDir string
}

// NewYouTubeExtractor creates a new YouTubeExtractor
func NewYouTubeExtractor(baseDir string) *YouTubeExtractor {
	return &YouTubeExtractor{
		client:  youtube.Client{},
		baseDir: baseDir,
	}
}

func (e *YouTubeExtractor) Extract(ctx context.Context, req Request) (*Media, error) {
	videoID := extractYouTubeID(req.URL)
	if videoID == "" {
		return nil, &Error{Reason: "not a recognized YouTube URL"}
	}

	video, err := e.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, &Error{Reason: fmt.Sprintf("failed to get video info: %v", err), Err: err}
	}

	format := pickFormat(video.Formats)
	if format == nil {
		return nil, &Error{Reason: "no mp4 format with audio found"}
	}

	stream, _, err := e.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, &Error{Reason: fmt.Sprintf("failed to get stream: %v", err), Err: err}
	}
	defer stream.Close()

	dir, err := os.MkdirTemp(e.baseDir, "dl-")
	if err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	path := filepath.Join(dir, sanitizeFilename(video.Title)+".mp4")

	out, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := io.Copy(out, stream); err != nil {
		out.Close()
		os.RemoveAll(dir)
		return nil, &Error{Reason: fmt.Sprintf("failed to download video: %v", err), Err: err}
	}
	if err := out.Close(); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}

	return &Media{Path: path, Dir: dir, Title: video.Title}, nil
}

// pickFormat prefers the largest mp4 format that already carries an
// audio track, so no local muxing is needed.
func pickFormat(formats youtube.FormatList) *youtube.Format {
	withAudio := formats.WithAudioChannels()

	var selected *youtube.Format
	for i := range withAudio {
		if !strings.Contains(withAudio[i].MimeType, "video/mp4") {
			continue
		}
		if selected == nil || withAudio[i].ContentLength > selected.ContentLength {
			selected = &withAudio[i]
		}
	}
	return selected
}

func extractYouTubeID(text string) string {
	matches := youtubeIDRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

func sanitizeFilename(name string) string {
	s := unsafeFilenameRe.ReplaceAllString(name, "_")
	s = strings.TrimSpace(s)
	if s == "" {
		s = "video"
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
