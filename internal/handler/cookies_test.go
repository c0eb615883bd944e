package handler

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errStoreDown = errors.New("store down")

func TestCookieHandler_CanHandle(t *testing.T) {
	h := NewCookieHandler(nil)

	tests := []struct {
		name     string
		update   tgbotapi.Update
		expected bool
	}{
		{
			name: "handles document upload",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					Document: &tgbotapi.Document{FileName: "twitter.txt"},
				},
			},
			expected: true,
		},
		{
			name: "ignores plain text",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{Text: "https://example.com"},
			},
			expected: false,
		},
		{
			name:     "ignores nil message",
			update:   tgbotapi.Update{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := h.CanHandle(tt.update); result != tt.expected {
				t.Errorf("CanHandle = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDetectSiteFromName(t *testing.T) {
	tests := []struct {
		fileName string
		expected string
	}{
		{"twitter.txt", "twitter"},
		{"my-twitter-cookies.txt", "twitter"},
		{"x.txt", "twitter"},
		{"reddit.txt", "reddit"},
		{"Reddit.TXT", "reddit"},
		{"cookies.txt", ""},
		{"instagram.txt", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			if result := detectSiteFromName(tt.fileName); result != tt.expected {
				t.Errorf("detectSiteFromName(%q) = %q, want %q", tt.fileName, result, tt.expected)
			}
		})
	}
}

func TestDetectSiteFromJar(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name: "twitter domain column",
			content: "# Netscape HTTP Cookie File\n" +
				".twitter.com\tTRUE\t/\tTRUE\t0\tauth_token\tabc\n",
			expected: "twitter",
		},
		{
			name:     "x.com domain column",
			content:  ".x.com\tTRUE\t/\tTRUE\t0\tauth_token\tabc\n",
			expected: "twitter",
		},
		{
			name:     "reddit domain column",
			content:  ".reddit.com\tTRUE\t/\tTRUE\t0\treddit_session\txyz\n",
			expected: "reddit",
		},
		{
			name: "marker word in cookie value does not classify",
			content: "# cookies for some other site\n" +
				".example.com\tTRUE\t/\tTRUE\t0\tref\thttps://twitter.com/foo\n",
			expected: "",
		},
		{
			name:     "unrelated site",
			content:  ".instagram.com\tTRUE\t/\tTRUE\t0\tsessionid\tabc\n",
			expected: "",
		},
		{
			name:     "empty file",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := detectSiteFromJar(tt.content); result != tt.expected {
				t.Errorf("detectSiteFromJar = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCookieHandler_ProcessStoresRecognized(t *testing.T) {
	store := newFakeStore(t)
	h := NewCookieHandler(store)
	sender := &mockSender{}

	content := ".twitter.com\tTRUE\t/\tTRUE\t0\tauth_token\tabc\n"
	h.process(sender, 42, 7, "twitter.txt", content)

	if stored := store.data["7/twitter"]; stored != content {
		t.Errorf("Expected cookies stored for (7, twitter), got %q", stored)
	}

	texts := sender.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "Saved your twitter cookies") {
		t.Errorf("Expected confirmation message, got %v", texts)
	}
}

func TestCookieHandler_ProcessRejectsUnrecognized(t *testing.T) {
	store := newFakeStore(t)
	h := NewCookieHandler(store)
	sender := &mockSender{}

	h.process(sender, 42, 7, "cookies.txt", ".instagram.com\tTRUE\t/\tTRUE\t0\tsessionid\tabc\n")

	if len(store.data) != 0 {
		t.Errorf("Store should be unchanged for unrecognized upload, got %v", store.data)
	}

	texts := sender.texts()
	if len(texts) != 1 || texts[0] != cookieGuidanceText {
		t.Errorf("Expected guidance message, got %v", texts)
	}
}

func TestCookieHandler_ProcessStoreError(t *testing.T) {
	store := newFakeStore(t)
	store.storeErr = errStoreDown
	h := NewCookieHandler(store)
	sender := &mockSender{}

	h.process(sender, 42, 7, "reddit.txt", "cookies")

	texts := sender.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "Failed to save") {
		t.Errorf("Expected failure message, got %v", texts)
	}
}
