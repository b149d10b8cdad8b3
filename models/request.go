package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// StaleAfter is how long a request may sit pending before it is flagged as
// stale in listings. It never changes the status itself.
const StaleAfter = 24 * time.Hour

// OvertimeRequest is a solicitação de hora extra. Justification is immutable
// after creation; a rejection records its reason in RejectionReason.
type OvertimeRequest struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	RequesterID     uint          `gorm:"not null;index" json:"requester_id"`
	Requester       string        `gorm:"not null;size:200" json:"requester"`
	Project         string        `gorm:"not null;size:100;index" json:"project"`
	Date            time.Time     `gorm:"not null;type:date" json:"date"`
	Hours           int           `gorm:"not null" json:"hours"`
	Justification   string        `gorm:"not null;size:500" json:"justification"`
	Status          RequestStatus `gorm:"not null;size:20;index;default:pending" json:"status"`
	RejectionReason string        `gorm:"size:500" json:"rejection_reason,omitempty"`

	// Stale is derived at read time, not stored.
	Stale bool `gorm:"-" json:"stale"`
}

// NewRequest validates the submission and builds a pending request. The id is
// assigned by the store on insert.
func NewRequest(requester *User, project string, date time.Time, hours int, justification string) (*OvertimeRequest, error) {
	if strings.TrimSpace(project) == "" {
		return nil, errors.Wrap(ErrValidation, "obra é obrigatória")
	}
	if date.IsZero() {
		return nil, errors.Wrap(ErrValidation, "data é obrigatória")
	}
	if hours <= 0 || hours > 24 {
		return nil, errors.Wrap(ErrValidation, "horas devem estar entre 1 e 24")
	}
	if strings.TrimSpace(justification) == "" {
		return nil, errors.Wrap(ErrValidation, "justificativa é obrigatória")
	}
	return &OvertimeRequest{
		RequesterID:   requester.ID,
		Requester:     requester.Name,
		Project:       project,
		Date:          date,
		Hours:         hours,
		Justification: justification,
		Status:        StatusPending,
	}, nil
}

// Approve moves pending to approved. Approved and rejected are terminal.
func (r *OvertimeRequest) Approve() error {
	if r.Status != StatusPending {
		return errors.Wrapf(ErrIllegalTransition, "request %d is %s", r.ID, r.Status)
	}
	r.Status = StatusApproved
	return nil
}

// Reject moves pending to rejected, recording the reason. The original
// justification is left untouched.
func (r *OvertimeRequest) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.Wrap(ErrValidation, "motivo da rejeição é obrigatório")
	}
	if r.Status != StatusPending {
		return errors.Wrapf(ErrIllegalTransition, "request %d is %s", r.ID, r.Status)
	}
	r.Status = StatusRejected
	r.RejectionReason = reason
	return nil
}

// IsStale reports whether the request has been waiting for a decision longer
// than StaleAfter.
func (r *OvertimeRequest) IsStale(now time.Time) bool {
	return r.Status == StatusPending && now.Sub(r.CreatedAt) > StaleAfter
}

// RequestFilter narrows List and the reporting queries. Zero values mean
// "no constraint"; From/To bound Date inclusively.
type RequestFilter struct {
	Status      RequestStatus
	Project     string
	RequesterID uint
	From        time.Time
	To          time.Time
}
