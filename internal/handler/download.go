package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/artur/glowing-lamp/internal/classifier"
	"github.com/artur/glowing-lamp/internal/database/repository"
	"github.com/artur/glowing-lamp/internal/delivery"
	"github.com/artur/glowing-lamp/internal/extractor"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	invalidURLText     = "Please send a valid URL"
	downloadFailedText = "Failed to download the video."
	sendFailedText     = "Failed to send the video. Please try again later."
	internalErrorText  = "Something went wrong on my side. Please try again later."
)

// DownloadHandler runs the whole request cycle for an incoming
// link: classify, look up cookies, extract, deliver, clean up.
type DownloadHandler struct {
	store     repository.CredentialStore
	youtube   extractor.Extractor
	generic   extractor.Extractor
	gate      *delivery.Gate
	userAgent string
}

func NewDownloadHandler(store repository.CredentialStore, youtube, generic extractor.Extractor, gate *delivery.Gate, userAgent string) *DownloadHandler {
	return &DownloadHandler{
		store:     store,
		youtube:   youtube,
		generic:   generic,
		gate:      gate,
		userAgent: userAgent,
	}
}

func (h *DownloadHandler) CanHandle(update tgbotapi.Update) bool {
	msg := update.Message
	return msg != nil &&
		msg.Document == nil &&
		!msg.IsCommand() &&
		strings.TrimSpace(msg.Text) != ""
}

func (h *DownloadHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message.From == nil {
		return
	}
	h.process(bot, update.Message.Chat.ID, update.Message.From.ID, update.Message.Text)
}

func (h *DownloadHandler) process(s delivery.Sender, chatID, userID int64, text string) {
	result := classifier.Classify(text)
	if !result.Valid {
		log.Printf("[DL] Invalid URL from user %d: %q", userID, text)
		s.Send(tgbotapi.NewMessage(chatID, invalidURLText))
		return
	}

	req := extractor.Request{URL: result.URL, UserAgent: h.userAgent}

	if result.Site != "" {
		cookiesPath, err := h.store.Materialize(userID, result.Site)
		if err != nil {
			log.Printf("[DL] Credential store unavailable for user %d: %v", userID, err)
			s.Send(tgbotapi.NewMessage(chatID, internalErrorText))
			return
		}
		if cookiesPath == "" {
			s.Send(tgbotapi.NewMessage(chatID, credentialGuidance(result.Site)))
			return
		}
		defer os.Remove(cookiesPath)
		req.CookiesPath = cookiesPath
	}

	// транзитное сообщение-песочные-часы, убираем при любом исходе
	if progress, err := s.Send(tgbotapi.NewMessage(chatID, "⏳")); err == nil {
		defer s.Send(tgbotapi.NewDeleteMessage(chatID, progress.MessageID))
	}

	s.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVideo))

	media, err := h.extract(context.Background(), req)
	if err != nil {
		var extErr *extractor.Error
		if errors.As(err, &extErr) {
			log.Printf("[DL] Extraction failed for %s: %s", result.URL, extErr.Reason)
		} else {
			log.Printf("[DL] Extraction failed for %s: %v", result.URL, err)
		}
		s.Send(tgbotapi.NewMessage(chatID, downloadFailedText))
		return
	}
	defer media.Cleanup()

	log.Printf("[DL] Extracted %q for user %d", media.Title, userID)

	outcome, err := h.gate.Deliver(s, chatID, media.Path)
	switch outcome {
	case delivery.Sent:
		log.Printf("[DL] Sent %q to chat %d", media.Title, chatID)
	case delivery.RejectedTooLarge:
		reply := fmt.Sprintf("Video size exceeds %dMB. Please choose a smaller video.", h.gate.MaxSizeMB())
		s.Send(tgbotapi.NewMessage(chatID, reply))
	case delivery.Failed:
		log.Printf("[DL] Delivery failed for %q: %v", media.Title, err)
		s.Send(tgbotapi.NewMessage(chatID, sendFailedText))
	}
}

// extract routes YouTube links to the native client and everything
// else to yt-dlp
func (h *DownloadHandler) extract(ctx context.Context, req extractor.Request) (*extractor.Media, error) {
	if h.youtube != nil && classifier.IsYouTube(req.URL) {
		return h.youtube.Extract(ctx, req)
	}
	return h.generic.Extract(ctx, req)
}

func credentialGuidance(site string) string {
	return fmt.Sprintf(
		"This link needs your %s cookies. Export them in Netscape format and send me the file as %s.txt.",
		site, site)
}
