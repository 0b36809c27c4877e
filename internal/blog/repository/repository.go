package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("blog post not found")
	ErrInvalidID = errors.New("invalid blog post id")
)

// Repository persists blog posts. Create assigns ID, CreatedAt and UpdatedAt
// on the passed post. Update replaces the three fields and refreshes
// UpdatedAt, returning the stored result.
type Repository interface {
	Create(ctx context.Context, p *blog.Post) error
	List(ctx context.Context) ([]*blog.Post, error)
	Get(ctx context.Context, id string) (*blog.Post, error)
	Update(ctx context.Context, id string, f blog.Fields) (*blog.Post, error)
	Delete(ctx context.Context, id string) error
}

// parseID converts a hex id into an ObjectID. Both repositories share it so
// malformed ids fail the same way regardless of backend.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return oid, nil
}
