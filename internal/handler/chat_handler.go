package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/payload"
	"github.com/emmaworks/family-advisor-api/internal/usecase"
)

// ChatHandler serves the family chat endpoints.
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validate    *validator.Validate
	logger      *zerolog.Logger
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatUsecase usecase.ChatUsecase, validate *validator.Validate, logger *zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validate:    validate,
		logger:      logger,
	}
}

// Send handles POST /api/chat and returns the advisor reply.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	caller, ok := CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req payload.ChatMessageRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	reply, err := h.chatUsecase.SendMessage(r.Context(), caller, req.Content, req.Metadata)
	if err != nil {
		if errors.Is(err, usecase.ErrNoFamily) {
			respondError(w, http.StatusBadRequest, "User not linked to a family")
			return
		}

		h.logger.Error().Err(err).Msg("failed to process chat message")
		respondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewChatMessageResponse(reply))
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	messages, err := h.chatUsecase.History(r.Context(), caller)
	if err != nil {
		if errors.Is(err, usecase.ErrNoFamily) {
			respondError(w, http.StatusBadRequest, "User not linked to a family")
			return
		}

		h.logger.Error().Err(err).Msg("failed to fetch chat history")
		respondError(w, http.StatusInternalServerError, "Failed to fetch chat history")
		return
	}

	responses := make([]payload.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, payload.NewChatMessageResponse(&messages[i]))
	}

	respondJSON(w, http.StatusOK, responses)
}
