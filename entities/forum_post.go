package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ForumPost struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	AuthorName string         `json:"author_name"`
	Content    string         `json:"content" gorm:"type:text"`
	Likes      int            `gorm:"not null;default:0" json:"likes"`
	Replies    datatypes.JSON `json:"replies"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
