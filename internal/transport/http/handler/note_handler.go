package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
	mdw "rp-market/internal/transport/http/middleware"
)

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler { return &NoteHandler{svc: svc} }

type noteIn struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type noteStatusIn struct {
	Status string `json:"status" binding:"required"`
}

type noteListQ struct {
	Status string `form:"status"`
}

func noteNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ez.NotFound("note not found")
	}
	return err
}

func (h *NoteHandler) Mount(r Routes) {
	authed := ez.New(r.Authed)

	ez.RegisterAction(authed, ez.Action[noteIn, *domain.Note]{
		Method: http.MethodPost,
		Path:   "/notes",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *noteIn) (*domain.Note, error) {
			return h.svc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID),
				in.Title, in.Content, domain.NoteStatus(in.Status))
		},
	})

	ez.RegisterAction(authed, ez.Action[noteListQ, []domain.Note]{
		Method: http.MethodGet,
		Path:   "/notes",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *noteListQ) ([]domain.Note, error) {
			return h.svc.List(c.Request.Context(), c.GetString(mdw.KeyUserID), domain.NoteStatus(in.Status))
		},
	})

	ez.RegisterAction(authed, ez.Action[noteStatusIn, *domain.Note]{
		Method: http.MethodPatch,
		Path:   "/notes/:id/status",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *noteStatusIn) (*domain.Note, error) {
			n, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"),
				c.GetString(mdw.KeyUserID), domain.NoteStatus(in.Status))
			return n, noteNotFound(err)
		},
	})

	// Deletion is admin-only and not owner-scoped.
	ez.RegisterAction(ez.New(r.Admin), ez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/notes/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, noteNotFound(h.svc.Delete(c.Request.Context(), id))
		},
	})
}
