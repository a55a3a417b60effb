package payload

import (
	"time"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

type ChatMessageRequest struct {
	Content  string         `json:"content" validate:"required"`
	Metadata map[string]any `json:"metadata"`
}

type ChatMessageResponse struct {
	ID         string    `json:"id"`
	SenderRole string    `json:"sender_role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChatMessageResponse maps a chat message to its public view.
func NewChatMessageResponse(message *model.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         message.ID.Hex(),
		SenderRole: message.SenderRole,
		Content:    message.Content,
		Timestamp:  message.Timestamp,
	}
}
