package entities

import (
	"github.com/google/uuid"
)

type ScanResult struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ImageKey   string    `json:"image_key"`
	ImageURL   string    `json:"image_url"`
	Disease    string    `json:"disease"`
	Confidence float64   `json:"confidence"`
	Solution   string    `json:"solution" gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
