package service

import (
	"context"
	"errors"

	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/repository"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/apperr"
	"go.mongodb.org/mongo-driver/mongo"
)

// Messages returned to API callers.
const (
	MsgMissingFields = "Missing required fields: title, content, or author"
	MsgMissingID     = "Blog post ID is required"
	MsgNotFound      = "Blog post not found"
	MsgCreateFailed  = "Error creating blog post"
	MsgListFailed    = "Error retrieving blog posts"
	MsgGetFailed     = "Error retrieving blog post"
	MsgUpdateFailed  = "Error updating blog post"
	MsgDeleteFailed  = "Error deleting blog post"
	MsgDeleted       = "Blog post deleted successfully"
)

// Service defines the blog operations used by the handler layer. Every
// returned error is an *apperr.Error.
type Service interface {
	Create(ctx context.Context, f blog.Fields) (*blog.Post, error)
	List(ctx context.Context) ([]*blog.Post, error)
	Get(ctx context.Context, id string) (*blog.Post, error)
	Update(ctx context.Context, id string, f blog.Fields) (*blog.Post, error)
	Delete(ctx context.Context, id string) error
}

// New returns a Service over the given repository.
func New(repo repository.Repository) Service {
	return &blogService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

type blogService struct {
	repo repository.Repository
}

func (s *blogService) Create(ctx context.Context, f blog.Fields) (*blog.Post, error) {
	if !f.Complete() {
		return nil, apperr.Validation(MsgMissingFields, nil)
	}
	p := &blog.Post{Title: f.Title, Content: f.Content, Author: f.Author}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Store(MsgCreateFailed, err)
	}
	return p, nil
}

func (s *blogService) List(ctx context.Context) ([]*blog.Post, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store(MsgListFailed, err)
	}
	return list, nil
}

func (s *blogService) Get(ctx context.Context, id string) (*blog.Post, error) {
	if id == "" {
		return nil, apperr.Validation(MsgMissingID, nil)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(MsgGetFailed, err)
	}
	return p, nil
}

func (s *blogService) Update(ctx context.Context, id string, f blog.Fields) (*blog.Post, error) {
	if id == "" {
		return nil, apperr.Validation(MsgMissingID, nil)
	}
	if !f.Complete() {
		return nil, apperr.Validation(MsgMissingFields, nil)
	}
	p, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, storeError(MsgUpdateFailed, err)
	}
	return p, nil
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation(MsgMissingID, nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(MsgDeleteFailed, err)
	}
	return nil
}

// storeError maps a repository failure. Malformed ids stay store failures:
// the lookup itself failed, the document was not shown to be absent.
func storeError(msg string, err error) *apperr.Error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(MsgNotFound)
	}
	return apperr.Store(msg, err)
}
