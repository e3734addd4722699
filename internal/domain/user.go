package domain

import (
	"gorm.io/datatypes"
)

// KeyPress is a single timed press within a rhythm. Time is the offset
// in milliseconds from the start of the rhythm. Order within a sequence
// is positional and significant.
type KeyPress struct {
	Key  string `json:"key"`
	Time int    `json:"time"`
}

// User is an identity record. The reference rhythm in KeyPresses is the
// user's credential; it is written once at registration and never
// mutated afterwards.
type User struct {
	Username   string                        `json:"username" gorm:"primaryKey"`
	AudioURL   string                        `json:"audioUrl" gorm:"column:audio_url;not null"`
	KeyPresses datatypes.JSONSlice[KeyPress] `json:"keyPresses" gorm:"column:key_presses;type:jsonb;not null"`
}
