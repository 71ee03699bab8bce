package main

import (
	"time"
)

// Game represents a game in the database. Board state is not stored
// directly; it is replayed through the rules engine from the move list.
type Game struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"type:text;uniqueIndex" json:"slug"`
	Size      int       `gorm:"default:4" json:"size"`
	Stacks    int       `gorm:"default:3" json:"stacks"`
	SizeNames string    `gorm:"type:text" json:"size_names"` // comma separated, smallest first
	Status    string    `gorm:"type:text;default:'active'" json:"status"`
	Winner    int       `gorm:"default:0" json:"winner"` // 1-based seat, 0 while active
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Moves []Move `gorm:"foreignKey:GameID" json:"moves,omitempty"`
}

// Move represents a single committed move in a game.
type Move struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID    int64     `gorm:"index;not null" json:"game_id"`
	Seat      int       `gorm:"not null" json:"seat"` // 1-based seat
	Number    int64     `gorm:"not null" json:"number"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

// User represents a registered user.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(128);uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
