package entities

import (
	"github.com/google/uuid"
)

type AdviceConversation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	User     *User            `gorm:"foreignKey:UserID"`
	Messages []*AdviceMessage `gorm:"foreignKey:ConversationID"`
	Timestamp
}

// AdviceMessage is one transcript entry. Entries are only ever appended;
// Seq orders them inside a conversation.
type AdviceMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_conversation_seq" json:"conversation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Seq            int       `gorm:"uniqueIndex:idx_conversation_seq" json:"seq"`
	Role           string    `json:"role"`   // user, assistant
	Content        string    `json:"content" gorm:"type:text"`
	Source         string    `json:"source"` // remote, fallback; empty for user entries

	Conversation *AdviceConversation `gorm:"foreignKey:ConversationID"`
	Timestamp
}
