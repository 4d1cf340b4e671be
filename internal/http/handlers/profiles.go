package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/wave-feed/internal/errors"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
)

type updateUsernameRequest struct {
	Username string `json:"user_name"`
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Me(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) UserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.UserPosts(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	var in updateUsernameRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.svc.UpdateUsername(r.Context(), middleware.UserIDFrom(r.Context()), in.Username)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// UpdateAvatar принимает multipart/form-data с файлом picture.
func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.svc.UpdateProfilePicture(r.Context(), middleware.UserIDFrom(r.Context()), picture)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) Chats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.svc.Chats(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chats)
}
