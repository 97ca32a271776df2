package models

import (
	"time"
)

// Season is an optional labelling window; a snapshot whose timestamp
// falls inside [StartsAt, EndsAt) is linked to the season.
type Season struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartsAt  time.Time `gorm:"not null;index"`
	EndsAt    time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Contains reports whether ts falls inside the season window.
func (s *Season) Contains(ts time.Time) bool {
	return !ts.Before(s.StartsAt) && ts.Before(s.EndsAt)
}

// TableName specifies the table name
func (Season) TableName() string {
	return "seasons"
}
