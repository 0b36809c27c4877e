package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the collection blog posts live in.
const Collection = "blogs"

// record is the stored shape of a post.
type record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (r *record) post() *blog.Post {
	return &blog.Post{
		ID:        r.ID.Hex(),
		Title:     r.Title,
		Content:   r.Content,
		Author:    r.Author,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// MongoRepo stores posts in a MongoDB collection keyed by ObjectID.
// No indexes are created beyond the default _id index.
type MongoRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col, now: blog.Now}
}

func (m *MongoRepo) Create(ctx context.Context, p *blog.Post) error {
	now := m.now()
	rec := record{
		ID:        primitive.NewObjectID(),
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	p.ID = rec.ID.Hex()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*blog.Post, error) {
	cur, err := m.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find blog posts: %w", err)
	}
	defer cur.Close(ctx)
	out := []*blog.Post{}
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode blog post: %w", err)
		}
		out = append(out, rec.post())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog posts: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*blog.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var rec record
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blog post: %w", err)
	}
	return rec.post(), nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, f blog.Fields) (*blog.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"title":     f.Title,
		"content":   f.Content,
		"author":    f.Author,
		"updatedAt": m.now(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec record
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return rec.post(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
