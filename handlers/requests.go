package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"horasextras/api"
	"horasextras/middleware"
	"horasextras/models"
	"horasextras/store"
)

const dateLayout = "2006-01-02"

type RequestHandler struct {
	requests *store.RequestStore
	projects *store.ProjectStore
}

func NewRequestHandler(requests *store.RequestStore, projects *store.ProjectStore) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		projects: projects,
	}
}

type createRequestBody struct {
	Project       string `json:"project"`
	Date          string `json:"date"`
	Hours         int    `json:"hours"`
	Justification string `json:"justification"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad_request", "corpo da requisição inválido")
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", "data inválida, use o formato AAAA-MM-DD")
		return
	}

	req, err := h.requests.Create(user, body.Project, date, body.Hours, body.Justification)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter, err := filterFromQuery(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	requests, err := h.requests.List(user, filter)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", "id inválido")
		return
	}

	req, err := h.requests.Get(user, id)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", "id inválido")
		return
	}

	req, err := h.requests.Approve(user, id)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, req)
}

type rejectRequestBody struct {
	Reason string `json:"reason"`
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "validation_error", "id inválido")
		return
	}

	var body rejectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad_request", "corpo da requisição inválido")
		return
	}

	req, err := h.requests.Reject(user, id, body.Reason)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, req)
}

// Projects serves the fixed obra list for the request form select.
func (h *RequestHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List()
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, projects)
}

// Statuses serves the central status-to-presentation mapping so client views
// never hardcode their own label/color tables.
func (h *RequestHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, models.AllStatusMeta())
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func filterFromQuery(r *http.Request) (models.RequestFilter, error) {
	var filter models.RequestFilter

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = models.RequestStatus(status)
	}
	filter.Project = r.URL.Query().Get("project")

	var err error
	if filter.From, err = parseDateParam(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateParam(r, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errDateParam(name)
	}
	return t, nil
}

type errDateParam string

func (e errDateParam) Error() string {
	return "parâmetro " + string(e) + " inválido, use o formato AAAA-MM-DD"
}
