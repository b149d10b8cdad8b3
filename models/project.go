package models

import (
	"time"
)

// Project is an obra: the construction site requests are filed against and
// reports are grouped by. The set is fixed and seeded at startup.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
}
