package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Chart is a named, shareable rhythm pattern. It is owned exclusively by
// OwnerUsername; only the owner may delete it. Charts are created, read
// and deleted, never updated.
type Chart struct {
	ID            int                           `json:"id" gorm:"primaryKey"`
	OwnerUsername string                        `json:"userUsername" gorm:"column:user_username;not null;index"`
	Title         string                        `json:"title" gorm:"not null"`
	AudioURL      string                        `json:"audioUrl" gorm:"column:audio_url;not null"`
	KeyPresses    datatypes.JSONSlice[KeyPress] `json:"keyPresses" gorm:"column:key_presses;type:jsonb;not null"`
	CreatedAt     time.Time                     `json:"createdAt"`
	UpdatedAt     time.Time                     `json:"updatedAt"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:OwnerUsername;references:Username"`
}
