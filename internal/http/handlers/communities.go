package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/wave-feed/internal/errors"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
	"github.com/pribylovaa/wave-feed/internal/service"
)

type joinResponse struct {
	Joined bool `json:"joined"`
}

func (h *Handlers) Communities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Communities(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) GetCommunity(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Community(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) CommunityPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.CommunityPosts(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) JoinStatus(w http.ResponseWriter, r *http.Request) {
	joined, err := h.svc.JoinStatus(r.Context(), chi.URLParam(r, "name"), middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, joinResponse{Joined: joined})
}

func (h *Handlers) ToggleJoin(w http.ResponseWriter, r *http.Request) {
	joined, err := h.svc.ToggleJoin(r.Context(), chi.URLParam(r, "name"), middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, joinResponse{Joined: joined})
}

// CreateCommunity принимает multipart/form-data: name, description и файл picture.
func (h *Handlers) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	form, cleanup, err := h.parseMultipart(w, r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	defer cleanup()

	picture, err := form.File("picture")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateCommunity(r.Context(), service.CreateCommunityInput{
		UserID:      middleware.UserIDFrom(r.Context()),
		Name:        form.Value("name"),
		Description: form.Value("description"),
		Picture:     picture,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
