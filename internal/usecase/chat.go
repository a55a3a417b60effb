package usecase

import (
	"context"
	"fmt"

	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
)

// ChatUsecase handles the family conversation thread. The advisor side is an
// echo stub; wiring a real model behind it is a deployment concern.
type ChatUsecase interface {
	SendMessage(ctx context.Context, caller *model.User, content string, metadata map[string]any) (*model.ChatMessage, error)
	History(ctx context.Context, caller *model.User) ([]model.ChatMessage, error)
}

type chatUsecase struct {
	messageRepo repository.ChatMessageRepository
}

// NewChatUsecase creates a new instance of ChatUsecase.
func NewChatUsecase(messageRepo repository.ChatMessageRepository) ChatUsecase {
	return &chatUsecase{messageRepo: messageRepo}
}

// SendMessage stores the member's message and the stubbed advisor reply, and
// returns the reply.
func (u *chatUsecase) SendMessage(
	ctx context.Context,
	caller *model.User,
	content string,
	metadata map[string]any,
) (*model.ChatMessage, error) {
	if caller.FamilyID == nil {
		return nil, ErrNoFamily
	}

	senderID := caller.ID
	if _, err := u.messageRepo.CreateMessage(ctx, &model.ChatMessage{
		FamilyID:   *caller.FamilyID,
		SenderID:   &senderID,
		SenderRole: string(caller.Role),
		Content:    content,
		Metadata:   metadata,
	}); err != nil {
		return nil, err
	}

	replyContent := fmt.Sprintf(
		"I'm Emma, your AI advisor. I received your message: '%s'. "+
			"I'm currently running in stub mode, but I'm ready to be connected to OpenAI!",
		content,
	)

	reply, err := u.messageRepo.CreateMessage(ctx, &model.ChatMessage{
		FamilyID:   *caller.FamilyID,
		SenderRole: model.SenderRoleAdvisor,
		Content:    replyContent,
	})
	if err != nil {
		return nil, err
	}

	return reply, nil
}

// History returns the caller's family messages in chronological order.
func (u *chatUsecase) History(ctx context.Context, caller *model.User) ([]model.ChatMessage, error) {
	if caller.FamilyID == nil {
		return nil, ErrNoFamily
	}

	return u.messageRepo.ListByFamily(ctx, caller.FamilyID.Hex())
}
