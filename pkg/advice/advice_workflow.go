package advice

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/internal/utils/metrics"
	"agri-assistant/pkg/advisory"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	AdviceFetcher interface {
		FetchAdvice(ctx context.Context, question string, transcript []domain.ChatMessage) advisory.Result[string]
	}

	// Workflow is one user's view of their current conversation.
	Workflow struct {
		repo    AdviceRepository
		fetcher AdviceFetcher
		log     *logger.Logger
		now     func() time.Time

		userID       uuid.UUID
		conversation *entities.AdviceConversation
		transcript   *Transcript
	}

	Answer struct {
		Text     string
		Degraded bool
	}
)

func NewWorkflow(repo AdviceRepository, fetcher AdviceFetcher, log *logger.Logger, userID uuid.UUID) *Workflow {
	return &Workflow{
		repo:         repo,
		fetcher:      fetcher,
		log:          log,
		now:          time.Now,
		userID:       userID,
		conversation: &entities.AdviceConversation{UserID: userID},
		transcript:   NewTranscript(),
	}
}

// Load replaces the in-memory state with the user's most recent conversation.
// No stored conversation leaves an empty transcript.
func (w *Workflow) Load(ctx context.Context) error {
	conversation, err := w.repo.GetLatestConversation(ctx, w.userID.String())
	if err != nil {
		if isNotFound(err) {
			w.conversation = &entities.AdviceConversation{UserID: w.userID}
			w.transcript = NewTranscript()
			return nil
		}
		return err
	}

	entries := make([]domain.ChatMessage, 0, len(conversation.Messages))
	for _, m := range conversation.Messages {
		entries = append(entries, domain.ChatMessage{Role: m.Role, Content: m.Content, Timestamp: m.CreatedAt})
	}
	conversation.Messages = nil

	w.conversation = conversation
	w.transcript = NewTranscript(entries...)
	return nil
}

func (w *Workflow) Transcript() *Transcript {
	return w.transcript
}

func (w *Workflow) ConversationID() uuid.UUID {
	return w.conversation.ID
}

// Submit appends the question and the answer to the transcript and the log.
// If the log write fails the transcript is rolled back to where it was.
func (w *Workflow) Submit(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, domain.ErrEmptyQuestion
	}

	prior := w.transcript.Entries()
	mark := w.transcript.Len()

	asked := w.now()
	w.transcript.Append(domain.ChatMessage{Role: domain.ChatRoleUser, Content: question, Timestamp: asked})

	res := w.fetcher.FetchAdvice(ctx, question, prior)
	source := domain.AdviceSourceRemote
	if res.Degraded() {
		source = domain.AdviceSourceFallback
	}

	answered := w.now()
	w.transcript.Append(domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: res.Value, Timestamp: answered})

	messages := []*entities.AdviceMessage{
		{
			ID:        uuid.New(),
			Role:      domain.ChatRoleUser,
			Content:   question,
			Timestamp: entities.Timestamp{CreatedAt: asked, UpdatedAt: asked},
		},
		{
			ID:        uuid.New(),
			Role:      domain.ChatRoleAssistant,
			Content:   res.Value,
			Source:    source,
			Timestamp: entities.Timestamp{CreatedAt: answered, UpdatedAt: answered},
		},
	}
	if err := w.repo.AppendMessages(ctx, w.conversation, messages); err != nil {
		w.transcript.Truncate(mark)
		w.log.ErrorCtx(ctx, "advice turn not saved", logger.Fields{"user_id": w.userID.String(), "error": err.Error()})
		return Answer{}, err
	}

	metrics.AdviceTurnsTotal.WithLabelValues(source).Inc()
	return Answer{Text: res.Value, Degraded: res.Degraded()}, nil
}

// Clear starts a new empty conversation. Earlier conversations are kept.
func (w *Workflow) Clear(ctx context.Context) error {
	conversation := &entities.AdviceConversation{ID: uuid.New(), UserID: w.userID}
	if err := w.repo.CreateConversation(ctx, conversation); err != nil {
		return err
	}
	w.conversation = conversation
	w.transcript = NewTranscript()
	return nil
}

func (w *Workflow) response() domain.ConversationResponse {
	res := domain.ConversationResponse{Messages: w.transcript.Entries()}
	if w.conversation.ID != uuid.Nil {
		res.ConversationID = w.conversation.ID.String()
	}
	return res
}
