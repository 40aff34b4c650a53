package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenant-api/internal/domain"
)

type userDTO struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"displayName"`
	UserPrincipalName string    `json:"userPrincipalName"`
	MailNickname      string    `json:"mailNickname"`
	CreatedDateTime   time.Time `json:"createdDateTime"`
}

type userListResponse struct {
	Data    []userDTO `json:"data"`
	NextURL string    `json:"nextUrl,omitempty"`
}

func userToDTO(u domain.User) userDTO {
	return userDTO{
		ID:                u.ID,
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		MailNickname:      u.MailNickname,
		CreatedDateTime:   u.CreatedAt,
	}
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	users, next, err := h.users.List(r.Context(), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := userListResponse{Data: make([]userDTO, 0, len(users))}
	for _, u := range users {
		resp.Data = append(resp.Data, userToDTO(u))
	}
	if next != nil {
		resp.NextURL = nextURL(r, page.PageSize, next)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /api/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, userToDTO(*user))
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/users/"+created.ID)
	writeJSON(w, http.StatusCreated, userToDTO(*created))
}

// UpdateUser handles PUT /api/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.users.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
