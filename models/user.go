package models

import (
	"time"
)

type Role string

const (
	RoleGestor      Role = "gestor"      // manager: approves/rejects requests
	RoleEncarregado Role = "encarregado" // site supervisor: submits requests
	RoleTecnico     Role = "tecnico"     // planning technician: reports only
)

func (r Role) Valid() bool {
	switch r {
	case RoleGestor, RoleEncarregado, RoleTecnico:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"not null;size:200" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;size:20" json:"role"`
}

func (u *User) IsGestor() bool {
	return u.Role == RoleGestor
}

func (u *User) IsEncarregado() bool {
	return u.Role == RoleEncarregado
}

func (u *User) IsTecnico() bool {
	return u.Role == RoleTecnico
}

// CanDecide reports whether the user may approve or reject requests.
func (u *User) CanDecide() bool {
	return u.IsGestor()
}

// CanRequest reports whether the user may submit overtime requests.
// Gestores may also file their own.
func (u *User) CanRequest() bool {
	return u.IsEncarregado() || u.IsGestor()
}

// CanViewAllRequests reports whether the user sees the whole collection or
// only their own submissions.
func (u *User) CanViewAllRequests() bool {
	return u.IsGestor() || u.IsTecnico()
}

func (u *User) CanViewReports() bool {
	return u.IsGestor() || u.IsTecnico()
}
