package domain

import (
	"errors"
)

var (
	MessageSuccessGetConversation   = "conversation retrieved successfully"
	MessageSuccessAskQuestion       = "advice generated successfully"
	MessageSuccessClearConversation = "conversation cleared successfully"

	MessageFailedGetConversation   = "failed to retrieve conversation"
	MessageFailedAskQuestion       = "Failed to get farming advice. Please try again."
	MessageFailedClearConversation = "failed to clear conversation"

	ErrEmptyQuestion = errors.New("question must not be empty")
)

const (
	AdviceSourceRemote   = "remote"
	AdviceSourceFallback = "fallback"
)

type (
	AskQuestionRequest struct {
		Question string `json:"question" validate:"required,max=2000"`
	}

	ConversationResponse struct {
		ConversationID string        `json:"conversation_id,omitempty"`
		Messages       []ChatMessage `json:"messages"`
	}

	AskQuestionResponse struct {
		Answer       string               `json:"answer"`
		Source       string               `json:"source"`
		Degraded     bool                 `json:"degraded"`
		Conversation ConversationResponse `json:"conversation"`
	}
)
