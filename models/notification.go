package models

import (
	"time"
)

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Screen identifies a client screen a notification can link to. The values
// are opaque to the core; the SPA owns the actual navigation.
type Screen string

const (
	ScreenLogin        Screen = "login"
	ScreenDashboard    Screen = "dashboard"
	ScreenSolicitacao  Screen = "solicitacao"
	ScreenAprovacao    Screen = "aprovacao"
	ScreenRelatorios   Screen = "relatorios"
	ScreenNotificacoes Screen = "notificacoes"
)

// Notification is a per-user feed entry. Entries are produced by request
// lifecycle events, not seeded independently.
type Notification struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	UserID       uint             `gorm:"not null;index" json:"user_id"`
	Kind         NotificationKind `gorm:"not null;size:20" json:"kind"`
	Title        string           `gorm:"not null;size:200" json:"title"`
	Message      string           `gorm:"not null;size:500" json:"message"`
	Read         bool             `gorm:"not null;default:false" json:"read"`
	ActionLabel  string           `gorm:"size:100" json:"action_label,omitempty"`
	ActionScreen Screen           `gorm:"size:30" json:"action_screen,omitempty"`
}
