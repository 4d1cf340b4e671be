package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/wave-feed/internal/errors"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
	"github.com/pribylovaa/wave-feed/internal/service"
)

type createCommentRequest struct {
	Text     string `json:"comment_text"`
	ParentID *int64 `json:"parent_comment_id"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (h *Handlers) PostComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	thread, err := h.svc.PostComments(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

func (h *Handlers) CommentsCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	n, err := h.svc.CommentsCount(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in createCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateComment(r.Context(), service.CreateCommentInput{
		UserID:   middleware.UserIDFrom(r.Context()),
		PostID:   id,
		ParentID: in.ParentID,
		Text:     in.Text,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
