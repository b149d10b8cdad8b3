package handlers

import (
	"net/http"
	"time"

	"horasextras/api"
	"horasextras/middleware"
	"horasextras/models"
	"horasextras/store"
)

type DashboardHandler struct {
	requests *store.RequestStore
	projects *store.ProjectStore
}

func NewDashboardHandler(requests *store.RequestStore, projects *store.ProjectStore) *DashboardHandler {
	return &DashboardHandler{
		requests: requests,
		projects: projects,
	}
}

// StatCard is one dashboard tile: a label and its current value.
type StatCard struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type dashboardResponse struct {
	Cards  []StatCard               `json:"cards"`
	Recent []models.OvertimeRequest `json:"recent"`
}

// Stats returns the role-specific dashboard numbers computed from the live
// collections, replacing the per-role literal arrays the screens used to
// carry, plus the user's recent activity.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	from, to := monthWindow(time.Now())

	var cards []StatCard
	var err error
	switch user.Role {
	case models.RoleGestor:
		cards, err = h.gestorStats(from, to)
	case models.RoleEncarregado:
		cards, err = h.encarregadoStats(user, from, to)
	case models.RoleTecnico:
		cards, err = h.tecnicoStats(from, to)
	}
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}

	// List is already scoped per role, so each user's activity section only
	// shows what they may see.
	all, err := h.requests.List(user, models.RequestFilter{})
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, dashboardResponse{
		Cards:  cards,
		Recent: recentRequests(all),
	})
}

// recentRequests returns up to the five newest requests, newest first.
func recentRequests(list []models.OvertimeRequest) []models.OvertimeRequest {
	const max = 5
	recent := make([]models.OvertimeRequest, 0, max)
	for i := len(list) - 1; i >= 0 && len(recent) < max; i-- {
		recent = append(recent, list[i])
	}
	return recent
}

func (h *DashboardHandler) gestorStats(from, to time.Time) ([]StatCard, error) {
	pending, err := h.requests.Count(models.RequestFilter{Status: models.StatusPending})
	if err != nil {
		return nil, err
	}
	approved, err := h.requests.Count(models.RequestFilter{Status: models.StatusApproved, From: from, To: to})
	if err != nil {
		return nil, err
	}
	rejected, err := h.requests.Count(models.RequestFilter{Status: models.StatusRejected, From: from, To: to})
	if err != nil {
		return nil, err
	}
	hours, err := h.monthHours(models.RequestFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	return []StatCard{
		{Label: "Pendentes de Aprovação", Value: pending},
		{Label: "Aprovadas no Mês", Value: approved},
		{Label: "Reprovadas no Mês", Value: rejected},
		{Label: "Total de Horas (Mês)", Value: hours},
	}, nil
}

func (h *DashboardHandler) encarregadoStats(user *models.User, from, to time.Time) ([]StatCard, error) {
	own := models.RequestFilter{RequesterID: user.ID}

	pending, err := h.requests.Count(withStatus(own, models.StatusPending))
	if err != nil {
		return nil, err
	}
	monthly := own
	monthly.From, monthly.To = from, to

	approved, err := h.requests.Count(withStatus(monthly, models.StatusApproved))
	if err != nil {
		return nil, err
	}
	rejected, err := h.requests.Count(withStatus(monthly, models.StatusRejected))
	if err != nil {
		return nil, err
	}
	hours, err := h.monthHours(monthly)
	if err != nil {
		return nil, err
	}

	return []StatCard{
		{Label: "Solicitações Pendentes", Value: pending},
		{Label: "Aprovadas no Mês", Value: approved},
		{Label: "Reprovadas no Mês", Value: rejected},
		{Label: "Horas Solicitadas (Mês)", Value: hours},
	}, nil
}

func (h *DashboardHandler) tecnicoStats(from, to time.Time) ([]StatCard, error) {
	totalObras, err := h.projects.Count()
	if err != nil {
		return nil, err
	}
	approvedHours, err := h.requests.SumHours(models.RequestFilter{Status: models.StatusApproved, From: from, To: to})
	if err != nil {
		return nil, err
	}
	active, err := h.requests.ActiveProjects(models.RequestFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	return []StatCard{
		{Label: "Total de Obras", Value: totalObras},
		{Label: "Horas Aprovadas (Mês)", Value: approvedHours},
		{Label: "Obras Ativas", Value: active},
	}, nil
}

// monthHours sums approved plus pending hours; rejected requests contribute
// nothing, matching the reporting rule.
func (h *DashboardHandler) monthHours(filter models.RequestFilter) (int64, error) {
	approved, err := h.requests.SumHours(withStatus(filter, models.StatusApproved))
	if err != nil {
		return 0, err
	}
	pending, err := h.requests.SumHours(withStatus(filter, models.StatusPending))
	if err != nil {
		return 0, err
	}
	return approved + pending, nil
}

func withStatus(f models.RequestFilter, s models.RequestStatus) models.RequestFilter {
	f.Status = s
	return f
}

// monthWindow returns the first and last day of now's month.
func monthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
