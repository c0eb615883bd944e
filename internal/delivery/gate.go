package delivery

import (
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Outcome of one delivery attempt
type Outcome int

const (
	Sent Outcome = iota
	RejectedTooLarge
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Sent:
		return "sent"
	case RejectedTooLarge:
		return "rejected_too_large"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Sender is the slice of the bot API the gate needs, so tests can
// inject a fake. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Gate decides whether an extracted file goes out to the chat and
// owns the file's lifetime from that point on.
type Gate struct {
	maxSizeMB int64
}

// NewGate creates a Gate with the given size limit in megabytes
func NewGate(maxSizeMB int64) *Gate {
	return &Gate{maxSizeMB: maxSizeMB}
}

// MaxSizeMB returns the configured limit, for user-facing messages
func (g *Gate) MaxSizeMB() int64 {
	return g.maxSizeMB
}

// Deliver sends the file at path to chatID as a streamable video,
// unless it is over the size limit. The file is deleted on every
// exit path, exactly once, including when sending fails.
func (g *Gate) Deliver(s Sender, chatID int64, path string) (Outcome, error) {
	defer os.Remove(path)

	info, err := os.Stat(path)
	if err != nil {
		return Failed, fmt.Errorf("failed to stat downloaded file: %w", err)
	}

	// strictly greater: a file of exactly the limit still goes out
	if info.Size() > g.maxSizeMB*1024*1024 {
		log.Printf("[GATE] Rejecting %s: %d bytes over %dMB limit", path, info.Size(), g.maxSizeMB)
		return RejectedTooLarge, nil
	}

	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.SupportsStreaming = true

	if _, err := s.Send(video); err != nil {
		return Failed, fmt.Errorf("failed to send video: %w", err)
	}

	return Sent, nil
}
