package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/service"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/apperr"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

// postView is the shape returned by create and the read operations.
type postView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// updatedView is the shape returned by update. It carries updatedAt instead
// of createdAt.
type updatedView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func viewOf(p *blog.Post) postView {
	return postView{ID: p.ID, Title: p.Title, Content: p.Content, Author: p.Author, CreatedAt: p.CreatedAt}
}

// Handler serves the /blogs resource.
type Handler struct {
	svc service.Service
}

func New(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterBlogRoutes binds the blog routes. guard, when given, runs ahead of
// the mutating routes (create, update, delete).
func RegisterBlogRoutes(r gin.IRouter, svc service.Service, guard ...gin.HandlerFunc) {
	h := New(svc)
	write := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), fn)
	}
	r.POST("/blogs", write(h.Create)...)
	r.GET("/blogs", h.List)
	r.GET("/blogs/:id", h.Get)
	r.PUT("/blogs/:id", write(h.Update)...)
	r.DELETE("/blogs/:id", write(h.Delete)...)
}

// Create accepts {title, content, author} and returns the stored post.
func (h *Handler) Create(c *gin.Context) {
	f, ok := bindFields(c)
	if !ok {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Str("id", p.ID).Msg("blog post created")
	c.JSON(http.StatusCreated, viewOf(p))
}

// List returns every post in store order.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]postView, 0, len(list))
	for _, p := range list {
		out = append(out, viewOf(p))
	}
	logger.FromContext(c.Request.Context()).Info().Int("count", len(out)).Msg("retrieved all blog posts")
	c.JSON(http.StatusOK, out)
}

// Get returns the post named by the id path parameter.
func (h *Handler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(p))
}

// Update replaces title, content and author. Partial bodies are rejected.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.Validation(service.MsgMissingID, nil))
		return
	}
	f, ok := bindFields(c)
	if !ok {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, f)
	if err != nil {
		fail(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Str("id", p.ID).Msg("blog post updated")
	c.JSON(http.StatusOK, updatedView{ID: p.ID, Title: p.Title, Content: p.Content, Author: p.Author, UpdatedAt: p.UpdatedAt})
}

// Delete removes the post named by the id path parameter.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info().Str("id", id).Msg("blog post deleted")
	c.JSON(http.StatusOK, apperr.Body{Message: service.MsgDeleted})
}

// bindFields decodes a JSON or form-encoded body, chosen by Content-Type.
// An empty body decodes to no fields and fails validation downstream like
// any other incomplete body.
func bindFields(c *gin.Context) (blog.Fields, bool) {
	var f blog.Fields
	if err := c.ShouldBind(&f); err != nil && !errors.Is(err, io.EOF) {
		fail(c, apperr.Validation(service.MsgMissingFields, err))
		return f, false
	}
	return f, true
}

func fail(c *gin.Context, err error) {
	e := apperr.As(err, "Internal server error")
	ev := logger.FromContext(c.Request.Context()).Warn()
	if e.Kind == apperr.KindStore {
		ev = logger.FromContext(c.Request.Context()).Error()
	}
	ev.Err(e.Err).Str("kind", e.Kind.String()).Str("id", c.Param("id")).Msg(e.Message)
	c.AbortWithStatusJSON(e.Status(), e.Body())
}
