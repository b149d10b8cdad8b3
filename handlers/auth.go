package handlers

import (
	"encoding/json"
	"net/http"

	"horasextras/api"
	"horasextras/config"
	"horasextras/middleware"
	"horasextras/store"
)

type AuthHandler struct {
	config *config.Config
	users  *store.UserStore
}

func NewAuthHandler(cfg *config.Config, users *store.UserStore) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		users:  users,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad_request", "corpo da requisição inválido")
		return
	}

	user, err := h.users.Authenticate(body.Email, body.Password)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "internal", "falha ao gerar token")
		return
	}

	middleware.SetSessionCookie(w, token, h.config.JWTExpiration)
	api.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		api.WriteError(w, http.StatusUnauthorized, "unauthorized", "autenticação necessária")
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}
