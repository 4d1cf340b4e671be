package handlers

import (
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/pribylovaa/wave-feed/internal/errors"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
	"github.com/pribylovaa/wave-feed/internal/service"
)

func (h *Handlers) NewPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.NewPosts(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) HomeFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.HomeFeed(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) TrendingPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.TrendingPosts(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	post, err := h.svc.Post(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// CreatePost принимает multipart/form-data: title, content, community_id и
// необязательный файл media.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	form, cleanup, err := h.parseMultipart(w, r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	defer cleanup()

	communityID, err := strconv.ParseInt(strings.TrimSpace(form.Value("community_id")), 10, 64)
	if err != nil {
		apierrors.WriteError(w, r, invalidArgument("community_id must be an integer"))
		return
	}

	media, err := form.File("media")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	post, err := h.svc.CreatePost(r.Context(), service.CreatePostInput{
		UserID:      middleware.UserIDFrom(r.Context()),
		CommunityID: communityID,
		Title:       form.Value("title"),
		Content:     form.Value("content"),
		Media:       media,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *Handlers) Handshakes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	hs, err := h.svc.Handshakes(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hs)
}

type handshakeResponse struct {
	Handshaken bool `json:"handshaken"`
}

func (h *Handlers) ToggleHandshake(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	on, err := h.svc.ToggleHandshake(r.Context(), id, middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, handshakeResponse{Handshaken: on})
}
