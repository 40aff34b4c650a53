package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenant-api/internal/domain"
)

type groupDTO struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"displayName"`
	Description     string    `json:"description"`
	MailNickname    string    `json:"mailNickname"`
	CreatedDateTime time.Time `json:"createdDateTime"`
}

type groupListResponse struct {
	Data    []groupDTO `json:"data"`
	NextURL string     `json:"nextUrl,omitempty"`
}

func groupToDTO(g domain.Group) groupDTO {
	return groupDTO{
		ID:              g.ID,
		DisplayName:     g.DisplayName,
		Description:     g.Description,
		MailNickname:    g.MailNickname,
		CreatedDateTime: g.CreatedAt,
	}
}

// ListGroups handles GET /api/groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	groups, next, err := h.groups.List(r.Context(), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := groupListResponse{Data: make([]groupDTO, 0, len(groups))}
	for _, g := range groups {
		resp.Data = append(resp.Data, groupToDTO(g))
	}
	if next != nil {
		resp.NextURL = nextURL(r, page.PageSize, next)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGroup handles GET /api/groups/{id}.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDTO(*group))
}

// CreateGroup handles POST /api/groups.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.groups.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/groups/"+created.ID)
	writeJSON(w, http.StatusCreated, groupToDTO(*created))
}

// UpdateGroup handles PUT /api/groups/{id}.
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.groups.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGroup handles DELETE /api/groups/{id}.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
