package advice

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/logger"
	"context"

	"github.com/google/uuid"
)

type (
	AdviceService interface {
		GetConversation(ctx context.Context, userID string) (domain.ConversationResponse, error)
		AskQuestion(ctx context.Context, req domain.AskQuestionRequest, userID string) (domain.AskQuestionResponse, error)
		ClearConversation(ctx context.Context, userID string) (domain.ConversationResponse, error)
	}

	adviceService struct {
		adviceRepository AdviceRepository
		fetcher          AdviceFetcher
		log              *logger.Logger
	}
)

func NewAdviceService(adviceRepository AdviceRepository, fetcher AdviceFetcher, log *logger.Logger) AdviceService {
	return &adviceService{
		adviceRepository: adviceRepository,
		fetcher:          fetcher,
		log:              log,
	}
}

func (s *adviceService) workflow(ctx context.Context, userID string) (*Workflow, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	wf := NewWorkflow(s.adviceRepository, s.fetcher, s.log, userUUID)
	if err := wf.Load(ctx); err != nil {
		return nil, err
	}
	return wf, nil
}

func (s *adviceService) GetConversation(ctx context.Context, userID string) (domain.ConversationResponse, error) {
	wf, err := s.workflow(ctx, userID)
	if err != nil {
		return domain.ConversationResponse{}, err
	}
	return wf.response(), nil
}

func (s *adviceService) AskQuestion(ctx context.Context, req domain.AskQuestionRequest, userID string) (domain.AskQuestionResponse, error) {
	wf, err := s.workflow(ctx, userID)
	if err != nil {
		return domain.AskQuestionResponse{}, err
	}

	answer, err := wf.Submit(ctx, req.Question)
	if err != nil {
		return domain.AskQuestionResponse{}, err
	}

	source := domain.AdviceSourceRemote
	if answer.Degraded {
		source = domain.AdviceSourceFallback
	}
	return domain.AskQuestionResponse{
		Answer:       answer.Text,
		Source:       source,
		Degraded:     answer.Degraded,
		Conversation: wf.response(),
	}, nil
}

func (s *adviceService) ClearConversation(ctx context.Context, userID string) (domain.ConversationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ConversationResponse{}, domain.ErrParseUUID
	}
	wf := NewWorkflow(s.adviceRepository, s.fetcher, s.log, userUUID)
	if err := wf.Clear(ctx); err != nil {
		return domain.ConversationResponse{}, err
	}
	return wf.response(), nil
}
