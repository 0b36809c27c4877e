package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps posts in a map. Used by tests and STORE_BACKEND=memory.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*blog.Post
	order []string
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*blog.Post), now: blog.Now}
}

func (m *MemoryRepo) Create(_ context.Context, p *blog.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.store[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

// List returns posts in insertion order, which is what a collection scan
// usually yields for an unindexed MongoDB collection.
func (m *MemoryRepo) List(_ context.Context) ([]*blog.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*blog.Post, 0, len(m.store))
	for _, id := range m.order {
		if p, ok := m.store[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*blog.Post, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) Update(_ context.Context, id string, f blog.Fields) (*blog.Post, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Title = f.Title
	p.Content = f.Content
	p.Author = f.Author
	p.UpdatedAt = m.now()
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	if _, err := parseID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
