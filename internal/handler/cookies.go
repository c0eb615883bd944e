package handler

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/artur/glowing-lamp/internal/classifier"
	"github.com/artur/glowing-lamp/internal/database/repository"
	"github.com/artur/glowing-lamp/internal/delivery"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// cookie uploads are small text files, anything bigger is not a jar
const maxCookieFileSize = 1 << 20

const cookieGuidanceText = "I couldn't tell which site these cookies are for. " +
	"Name the file twitter.txt or reddit.txt and send it again."

// CookieHandler accepts uploaded cookie-jar files and stores them
// per user, per site.
type CookieHandler struct {
	store  repository.CredentialStore
	client *http.Client
}

func NewCookieHandler(store repository.CredentialStore) *CookieHandler {
	return &CookieHandler{
		store:  store,
		client: http.DefaultClient,
	}
}

func (h *CookieHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.Document != nil
}

func (h *CookieHandler) Handle(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	msg := update.Message
	if msg.From == nil {
		return
	}

	content, err := h.fetchDocument(bot, msg.Document)
	if err != nil {
		log.Printf("[COOKIES] Failed to fetch document %s: %v", msg.Document.FileName, err)
		reply := tgbotapi.NewMessage(msg.Chat.ID, "I couldn't read that file. Please send it again.")
		bot.Send(reply)
		return
	}

	h.process(bot, msg.Chat.ID, msg.From.ID, msg.Document.FileName, content)
}

// fetchDocument pulls the uploaded file's content through the bot API
func (h *CookieHandler) fetchDocument(bot *tgbotapi.BotAPI, doc *tgbotapi.Document) (string, error) {
	url, err := bot.GetFileDirectURL(doc.FileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file URL: %w", err)
	}

	resp, err := h.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCookieFileSize))
	if err != nil {
		return "", fmt.Errorf("failed to read file body: %w", err)
	}

	return string(data), nil
}

func (h *CookieHandler) process(s delivery.Sender, chatID, userID int64, fileName, content string) {
	site := detectSiteFromName(fileName)
	if site == "" {
		site = detectSiteFromJar(content)
	}

	if site == "" {
		log.Printf("[COOKIES] Unrecognized cookie file %q from user %d", fileName, userID)
		s.Send(tgbotapi.NewMessage(chatID, cookieGuidanceText))
		return
	}

	if err := h.store.Store(userID, site, content); err != nil {
		log.Printf("[COOKIES] Failed to store %s cookies for user %d: %v", site, userID, err)
		s.Send(tgbotapi.NewMessage(chatID, "Failed to save your cookies. Please try again later."))
		return
	}

	log.Printf("[COOKIES] Stored %s cookies for user %d", site, userID)
	s.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Saved your %s cookies. Send me a link!", site)))
}

// detectSiteFromName classifies the upload by its filename, e.g.
// twitter.txt or reddit.txt
func detectSiteFromName(fileName string) string {
	name := strings.ToLower(strings.TrimSuffix(fileName, filepath.Ext(fileName)))

	switch {
	case strings.Contains(name, "twitter"), name == "x", strings.Contains(name, "x.com"):
		return classifier.SiteTwitter
	case strings.Contains(name, "reddit"):
		return classifier.SiteReddit
	}
	return ""
}

// detectSiteFromJar falls back to the domain column of a Netscape
// cookie jar. Only the first field of each line is considered, so a
// cookie value containing "twitter" somewhere cannot misclassify.
func detectSiteFromJar(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		domain := strings.TrimPrefix(strings.ToLower(fields[0]), ".")

		switch {
		case domainMatches(domain, "twitter.com"), domainMatches(domain, "x.com"):
			return classifier.SiteTwitter
		case domainMatches(domain, "reddit.com"):
			return classifier.SiteReddit
		}
	}
	return ""
}

func domainMatches(domain, want string) bool {
	return domain == want || strings.HasSuffix(domain, "."+want)
}
