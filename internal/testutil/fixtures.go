package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username   string
	audioURL   string
	keyPresses []domain.KeyPress
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		audioURL: "https://cdn.test/audio/default.mp3",
		keyPresses: []domain.KeyPress{
			{Key: "A", Time: 0},
			{Key: "B", Time: 500},
		},
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithAudioURL sets the audio URL
func (b *UserBuilder) WithAudioURL(audioURL string) *UserBuilder {
	b.audioURL = audioURL
	return b
}

// WithKeyPresses sets the reference rhythm
func (b *UserBuilder) WithKeyPresses(keyPresses []domain.KeyPress) *UserBuilder {
	b.keyPresses = keyPresses
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:   b.username,
		AudioURL:   b.audioURL,
		KeyPresses: b.keyPresses,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// ChartBuilder creates test charts with a builder pattern
type ChartBuilder struct {
	owner      string
	title      string
	audioURL   string
	keyPresses []domain.KeyPress
	createdAt  *time.Time
}

// NewChartBuilder creates a new ChartBuilder with default values
func NewChartBuilder(owner string) *ChartBuilder {
	return &ChartBuilder{
		owner:    owner,
		title:    fmt.Sprintf("chart_%s", uuid.New().String()[:8]),
		audioURL: "https://cdn.test/audio/chart.mp3",
		keyPresses: []domain.KeyPress{
			{Key: "D", Time: 0},
			{Key: "F", Time: 250},
			{Key: "J", Time: 500},
		},
	}
}

// WithTitle sets the title
func (b *ChartBuilder) WithTitle(title string) *ChartBuilder {
	b.title = title
	return b
}

// WithCreatedAt pins the creation timestamp, for ordering tests
func (b *ChartBuilder) WithCreatedAt(createdAt time.Time) *ChartBuilder {
	b.createdAt = &createdAt
	return b
}

// Build creates the chart in the database
func (b *ChartBuilder) Build(t *testing.T, db *gorm.DB) *domain.Chart {
	t.Helper()

	chart := &domain.Chart{
		OwnerUsername: b.owner,
		Title:         b.title,
		AudioURL:      b.audioURL,
		KeyPresses:    b.keyPresses,
	}
	if b.createdAt != nil {
		chart.CreatedAt = *b.createdAt
		chart.UpdatedAt = *b.createdAt
	}

	if err := db.Create(chart).Error; err != nil {
		t.Fatalf("failed to create chart: %v", err)
	}

	return chart
}
