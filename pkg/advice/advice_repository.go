package advice

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AdviceRepository interface {
		GetLatestConversation(ctx context.Context, userID string) (*entities.AdviceConversation, error)
		CreateConversation(ctx context.Context, conversation *entities.AdviceConversation) error
		AppendMessages(ctx context.Context, conversation *entities.AdviceConversation, messages []*entities.AdviceMessage) error
		CountTurns(ctx context.Context, userID string) (int64, error)
	}

	adviceRepository struct {
		db *gorm.DB
	}
)

func NewAdviceRepository(db *gorm.DB) AdviceRepository {
	return &adviceRepository{db: db}
}

// GetLatestConversation returns the most recently touched conversation with
// its messages in order, or gorm.ErrRecordNotFound.
func (r *adviceRepository) GetLatestConversation(ctx context.Context, userID string) (*entities.AdviceConversation, error) {
	var conversation entities.AdviceConversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq asc")
		}).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *adviceRepository) CreateConversation(ctx context.Context, conversation *entities.AdviceConversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

// AppendMessages writes messages after the conversation's current last entry
// in one transaction. A conversation without an id is created first.
func (r *adviceRepository) AppendMessages(ctx context.Context, conversation *entities.AdviceConversation, messages []*entities.AdviceMessage) error {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if conversation.ID == uuid.Nil {
			conversation.ID = uuid.New()
			created = true
			if err := tx.Omit("Messages").Create(conversation).Error; err != nil {
				return err
			}
		}

		var lastSeq int
		if err := tx.Model(&entities.AdviceMessage{}).
			Where("conversation_id = ?", conversation.ID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&lastSeq).Error; err != nil {
			return err
		}

		for i, m := range messages {
			m.ConversationID = conversation.ID
			m.UserID = conversation.UserID
			m.Seq = lastSeq + i + 1
		}
		if err := tx.Create(&messages).Error; err != nil {
			return err
		}

		return tx.Model(&entities.AdviceConversation{}).
			Where("id = ?", conversation.ID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil && created {
		conversation.ID = uuid.Nil
	}
	return err
}

func (r *adviceRepository) CountTurns(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.AdviceMessage{}).
		Where("user_id = ? AND role = ?", userID, domain.ChatRoleAssistant).
		Count(&count).Error
	return count, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
