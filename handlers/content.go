// File: oasis/handlers/content.go
package handlers

import (
	"context"

	"oasis/middleware"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

// Catalog is the CRUD surface shared by every content collection.
type Catalog[T any] interface {
	List(ctx context.Context, includeHidden bool) ([]T, error)
	Get(ctx context.Context, id string, includeHidden bool) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id string, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandler exposes a Catalog over HTTP. Hidden items are returned only to admins
// that ask for them with ?all=true.
type ContentHandler[T any] struct {
	Svc  Catalog[T]
	Name string
}

func NewContentHandler[T any](svc Catalog[T], name string) *ContentHandler[T] {
	return &ContentHandler[T]{Svc: svc, Name: name}
}

func (h *ContentHandler[T]) List(c *gin.Context) {
	all := middleware.IsAdmin(c) && c.Query("all") == "true"
	items, err := h.Svc.List(c.Request.Context(), all)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", items)
}

func (h *ContentHandler[T]) Get(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("id"), middleware.IsAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "", item)
}

func (h *ContentHandler[T]) Create(c *gin.Context) {
	item := new(T)
	if !utils.BindJSON(c, item) {
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), item)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, h.Name+" created", created)
}

func (h *ContentHandler[T]) Update(c *gin.Context) {
	item := new(T)
	if !utils.BindJSON(c, item) {
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, h.Name+" updated", updated)
}

func (h *ContentHandler[T]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, h.Name+" deleted", nil)
}
