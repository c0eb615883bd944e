package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Prefer mp4 video + m4a audio muxed together, fall back to the best
// ready-made mp4. Telegram plays mp4 inline, other containers only
// arrive as documents.
const formatPreference = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/mp4"

var ytdlpErrorRe = regexp.MustCompile(`(?i)ERROR[:\s]+(.+?)(?:\n|$)`)

// YtdlpExtractor shells out to the yt-dlp binary. It handles every
// source site, including the ones that need user cookies.
type YtdlpExtractor struct {
	binPath string
	baseDir string
}

// NewYtdlpExtractor creates a new YtdlpExtractor. Downloads land in
// per-request dirs under baseDir.
func NewYtdlpExtractor(binPath, baseDir string) *YtdlpExtractor {
	return &YtdlpExtractor{
		binPath: binPath,
		baseDir: baseDir,
	}
}

func (e *YtdlpExtractor) Extract(ctx context.Context, req Request) (*Media, error) {
	dir, err := os.MkdirTemp(e.baseDir, "dl-")
	if err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.binPath, buildArgs(req, dir)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		return nil, &Error{Reason: parseYtdlpError(stderr.String()), Err: err}
	}

	path, err := findDownloaded(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, &Error{Reason: err.Error(), Err: err}
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return &Media{Path: path, Dir: dir, Title: title}, nil
}

func buildArgs(req Request, dir string) []string {
	args := []string{
		"-f", formatPreference,
		"-o", filepath.Join(dir, "%(title)s.%(ext)s"),
		"--no-playlist",
		"--no-progress",
	}

	if req.UserAgent != "" {
		args = append(args, "--user-agent", req.UserAgent)
	}
	// several sites reject requests without a matching referer
	args = append(args, "--referer", req.URL)

	if req.CookiesPath != "" {
		args = append(args, "--cookies", req.CookiesPath)
	}

	return append(args, req.URL)
}

// parseYtdlpError pulls the first ERROR line out of yt-dlp's stderr
func parseYtdlpError(output string) string {
	if m := ytdlpErrorRe.FindStringSubmatch(output); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return "yt-dlp exited with an error"
}

// findDownloaded locates the file yt-dlp produced. The dir is fresh
// per request, so the largest regular file is the merged result.
func findDownloaded(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read download dir: %w", err)
	}

	var best string
	var bestSize int64
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".part") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if best == "" || info.Size() > bestSize {
			best = filepath.Join(dir, entry.Name())
			bestSize = info.Size()
		}
	}

	if best == "" {
		return "", fmt.Errorf("no file produced in %s", dir)
	}
	return best, nil
}
