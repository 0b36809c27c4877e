package blog

import "time"

// Post is a blog post as held by the store.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields are the caller-supplied parts of a post. Create and update both
// replace all three.
type Fields struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
	Author  string `json:"author" form:"author"`
}

// Complete reports whether every field is non-empty.
func (f Fields) Complete() bool {
	return f.Title != "" && f.Content != "" && f.Author != ""
}

// Now returns the current time at the precision the store keeps (UTC, ms).
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
