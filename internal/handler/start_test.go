package handler

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestStartHandler_CanHandle(t *testing.T) {
	handler := NewStartHandler()

	tests := []struct {
		name     string
		update   tgbotapi.Update
		expected bool
	}{
		{
			name: "handles /start command",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					Text: "/start",
					Entities: []tgbotapi.MessageEntity{
						{Type: "bot_command", Offset: 0, Length: 6},
					},
				},
			},
			expected: true,
		},
		{
			name: "ignores regular message",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					Text: "Hello",
				},
			},
			expected: false,
		},
		{
			name: "ignores other commands",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					Text: "/help",
					Entities: []tgbotapi.MessageEntity{
						{Type: "bot_command", Offset: 0, Length: 5},
					},
				},
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
			result := handler.CanHandle(tt.update)
			if result != tt.expected {
				t.Errorf("CanHandle() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetUserName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		userName  string
		expected  string
	}{
		{
			name:      "returns first name when available",
			firstName: "Artur",
			userName:  "artur123",
			expected:  "Artur",
		},
		{
			name:      "returns username when first name is empty",
			firstName: "",
			userName:  "artur123",
			expected:  "artur123",
		},
		{
			name:      "returns empty string when both are empty",
			firstName: "",
			userName:  "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getUserName(tt.firstName, tt.userName)
			if result != tt.expected {
				t.Errorf("getUserName(%q, %q) = %q, want %q",
					tt.firstName, tt.userName, result, tt.expected)
			}
		})
	}
}
