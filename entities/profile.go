package entities

import (
	"github.com/google/uuid"
)

// Profile shares its primary key with the owning User.
type Profile struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Phone           string    `json:"phone"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
