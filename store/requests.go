package store

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"horasextras/models"
)

// Mailer delivers a notification out of band. Implementations must be safe to
// call with best-effort semantics; the store never waits on or fails with it.
type Mailer interface {
	Send(to, subject, body string)
}

// RequestStore owns the overtime request collection. Every mutation goes
// through here: validation first, then the write, then the notification
// fan-out. Authorization is enforced at this boundary, not only in handlers.
type RequestStore struct {
	db            *gorm.DB
	users         *UserStore
	projects      *ProjectStore
	notifications *NotificationStore
	mailer        Mailer
}

func NewRequestStore(db *gorm.DB, users *UserStore, projects *ProjectStore, notifications *NotificationStore, mailer Mailer) *RequestStore {
	return &RequestStore{
		db:            db,
		users:         users,
		projects:      projects,
		notifications: notifications,
		mailer:        mailer,
	}
}

// Create validates and inserts a new pending request, then notifies every
// gestor. Nothing is written when validation fails.
func (s *RequestStore) Create(actor *models.User, project string, date time.Time, hours int, justification string) (*models.OvertimeRequest, error) {
	if !actor.CanRequest() {
		return nil, errors.Wrap(models.ErrForbidden, "somente encarregados podem solicitar horas extras")
	}

	req, err := models.NewRequest(actor, project, date, hours, justification)
	if err != nil {
		return nil, err
	}

	known, err := s.projects.Exists(project)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, errors.Wrapf(models.ErrValidation, "obra desconhecida: %s", project)
	}

	if err := s.db.Create(req).Error; err != nil {
		return nil, errors.Wrap(err, "insert request")
	}

	s.notifyCreated(req)
	return req, nil
}

// List returns requests in insertion order. Encarregados only ever see their
// own submissions; the filter composes on top of that scope.
func (s *RequestStore) List(actor *models.User, filter models.RequestFilter) ([]models.OvertimeRequest, error) {
	if !actor.CanViewAllRequests() {
		filter.RequesterID = actor.ID
	}

	var requests []models.OvertimeRequest
	if err := applyFilter(s.db.Model(&models.OvertimeRequest{}), filter).
		Order("id asc").Find(&requests).Error; err != nil {
		return nil, errors.Wrap(err, "list requests")
	}

	now := time.Now()
	for i := range requests {
		requests[i].Stale = requests[i].IsStale(now)
	}
	return requests, nil
}

func (s *RequestStore) Get(actor *models.User, id uint) (*models.OvertimeRequest, error) {
	req, err := s.byID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewAllRequests() && req.RequesterID != actor.ID {
		return nil, errors.Wrapf(models.ErrForbidden, "request %d belongs to another requester", id)
	}
	req.Stale = req.IsStale(time.Now())
	return req, nil
}

// Approve applies pending -> approved. The UPDATE is guarded on the current
// status so that two concurrent decisions cannot both land: the loser sees
// zero affected rows and gets ErrIllegalTransition.
func (s *RequestStore) Approve(actor *models.User, id uint) (*models.OvertimeRequest, error) {
	if !actor.CanDecide() {
		return nil, errors.Wrap(models.ErrForbidden, "aprovação exige perfil gestor")
	}

	req, err := s.byID(id)
	if err != nil {
		return nil, err
	}
	if err := req.Approve(); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.OvertimeRequest{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", models.StatusApproved)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "approve request")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrapf(models.ErrIllegalTransition, "request %d already decided", id)
	}

	s.notifyDecision(req)
	return req, nil
}

// Reject applies pending -> rejected with a mandatory reason. The reason is
// stored on its own column; the submitted justification is never overwritten.
func (s *RequestStore) Reject(actor *models.User, id uint, reason string) (*models.OvertimeRequest, error) {
	if !actor.CanDecide() {
		return nil, errors.Wrap(models.ErrForbidden, "reprovação exige perfil gestor")
	}

	req, err := s.byID(id)
	if err != nil {
		return nil, err
	}
	if err := req.Reject(reason); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.OvertimeRequest{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "reject request")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrapf(models.ErrIllegalTransition, "request %d already decided", id)
	}

	s.notifyDecision(req)
	return req, nil
}

func (s *RequestStore) Count(filter models.RequestFilter) (int64, error) {
	var count int64
	if err := applyFilter(s.db.Model(&models.OvertimeRequest{}), filter).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count requests")
	}
	return count, nil
}

func (s *RequestStore) SumHours(filter models.RequestFilter) (int64, error) {
	var total int64
	if err := applyFilter(s.db.Model(&models.OvertimeRequest{}), filter).
		Select("COALESCE(SUM(hours), 0)").Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "sum request hours")
	}
	return total, nil
}

// ActiveProjects counts distinct obras with at least one non-rejected request
// in scope.
func (s *RequestStore) ActiveProjects(filter models.RequestFilter) (int64, error) {
	var count int64
	if err := applyFilter(s.db.Model(&models.OvertimeRequest{}), filter).
		Where("status <> ?", models.StatusRejected).
		Distinct("project").Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count active projects")
	}
	return count, nil
}

func (s *RequestStore) byID(id uint) (*models.OvertimeRequest, error) {
	var req models.OvertimeRequest
	if err := s.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(models.ErrNotFound, "request %d", id)
		}
		return nil, errors.Wrap(err, "load request")
	}
	return &req, nil
}

func applyFilter(q *gorm.DB, f models.RequestFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Project != "" {
		q = q.Where("project = ?", f.Project)
	}
	if f.RequesterID != 0 {
		q = q.Where("requester_id = ?", f.RequesterID)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date <= ?", f.To)
	}
	return q
}

// Notification fan-out is best effort: failures are logged and never surfaced
// to the caller, so a broken feed cannot interrupt the request lifecycle.

func (s *RequestStore) notifyCreated(req *models.OvertimeRequest) {
	gestores, err := s.users.ByRole(models.RoleGestor)
	if err != nil {
		log.WithError(err).Error("request created: could not resolve gestores")
		return
	}

	title := "Nova Solicitação Pendente"
	message := fmt.Sprintf("%s solicitou %d horas extras para %s", req.Requester, req.Hours, req.Project)
	for _, g := range gestores {
		n := models.Notification{
			UserID:       g.ID,
			Kind:         models.KindWarning,
			Title:        title,
			Message:      message,
			ActionLabel:  "Avaliar",
			ActionScreen: models.ScreenAprovacao,
		}
		if err := s.notifications.Create(&n); err != nil {
			log.WithError(err).WithField("request_id", req.ID).Error("request created: notification not stored")
		}
		if s.mailer != nil {
			s.mailer.Send(g.Email, title, message)
		}
	}
}

func (s *RequestStore) notifyDecision(req *models.OvertimeRequest) {
	requester, err := s.users.ByID(req.RequesterID)
	if err != nil {
		log.WithError(err).WithField("request_id", req.ID).Error("request decided: could not resolve requester")
		return
	}

	var n models.Notification
	switch req.Status {
	case models.StatusApproved:
		n = models.Notification{
			UserID:  requester.ID,
			Kind:    models.KindSuccess,
			Title:   "Solicitação Aprovada",
			Message: fmt.Sprintf("Sua solicitação de %d horas para %s foi aprovada", req.Hours, req.Project),
		}
	case models.StatusRejected:
		n = models.Notification{
			UserID:  requester.ID,
			Kind:    models.KindError,
			Title:   "Solicitação Reprovada",
			Message: fmt.Sprintf("Solicitação reprovada: %s", req.RejectionReason),
		}
	default:
		return
	}
	n.ActionLabel = "Ver Solicitações"
	n.ActionScreen = models.ScreenSolicitacao

	if err := s.notifications.Create(&n); err != nil {
		log.WithError(err).WithField("request_id", req.ID).Error("request decided: notification not stored")
	}
	if s.mailer != nil {
		s.mailer.Send(requester.Email, n.Title, n.Message)
	}
}
