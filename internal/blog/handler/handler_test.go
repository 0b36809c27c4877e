package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog"
	"github.com/gogotex/gogotex/backend/blog-service/internal/blog/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(svc service.Service, guard ...gin.HandlerFunc) *gin.Engine {
	g := gin.New()
	RegisterBlogRoutes(g, svc, guard...)
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func count(t *testing.T, g *gin.Engine) int {
	t.Helper()
	w := do(g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return len(list)
}

func TestBlogHandler_CRUD(t *testing.T) {
	g := newEngine(service.NewMemoryService())

	// create
	w := do(g, http.MethodPost, "/blogs", `{"title":"T","content":"C","author":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "T", created["title"])
	assert.Equal(t, "C", created["content"])
	assert.Equal(t, "A", created["author"])
	assert.NotEmpty(t, created["createdAt"])
	assert.NotContains(t, created, "updatedAt")
	assert.Len(t, created, 5)

	// get
	w = do(g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, created, got)

	// list
	w = do(g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])
	assert.NotContains(t, list[0], "updatedAt")

	// update
	w = do(g, http.MethodPut, "/blogs/"+id, `{"title":"T2","content":"C2","author":"A2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "T2", updated["title"])
	assert.NotEmpty(t, updated["updatedAt"])
	assert.NotContains(t, updated, "createdAt")

	// delete
	w = do(g, http.MethodDelete, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"message": "Blog post deleted successfully"}, decode(t, w))

	w = do(g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog post not found", decode(t, w)["message"])

	w = do(g, http.MethodDelete, "/blogs/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_MissingFieldsPersistsNothing(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	bodies := []string{
		`{"content":"C","author":"A"}`,
		`{"title":"T","author":"A"}`,
		`{"title":"T","content":"C"}`,
		`{"title":"","content":"C","author":"A"}`,
		`{}`,
		"",
		`{not json`,
	}
	for _, b := range bodies {
		w := do(g, http.MethodPost, "/blogs", b)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %q", b)
		assert.Equal(t, service.MsgMissingFields, decode(t, w)["message"])
	}
	assert.Zero(t, count(t, g))
}

func doForm(g *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestFormEncodedBodies(t *testing.T) {
	g := newEngine(service.NewMemoryService())

	w := doForm(g, http.MethodPost, "/blogs", url.Values{"title": {"T"}, "content": {"C"}, "author": {"A"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "T", created["title"])

	w = doForm(g, http.MethodPut, "/blogs/"+id, url.Values{"title": {"T2"}, "content": {"C2"}, "author": {"A2"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "T2", updated["title"])
	assert.Equal(t, "C2", updated["content"])
	assert.Equal(t, "A2", updated["author"])

	// incomplete forms fail validation like incomplete JSON
	w = doForm(g, http.MethodPost, "/blogs", url.Values{"title": {"T"}, "content": {"C"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgMissingFields, decode(t, w)["message"])
	assert.Equal(t, 1, count(t, g))
}

func TestCreate_NonStringFieldIsRejected(t *testing.T) {
	g := newEngine(service.NewMemoryService())

	w := do(g, http.MethodPost, "/blogs", `{"title":123,"content":"C","author":"A"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, service.MsgMissingFields, body["message"])
	assert.NotEmpty(t, body["error"])
	assert.Zero(t, count(t, g))
}

func TestList_EmptyIsArray(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	w := do(g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGet_Idempotent(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	w := do(g, http.MethodPost, "/blogs", `{"title":"T","content":"C","author":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	first := do(g, http.MethodGet, "/blogs/"+id, "")
	second := do(g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGet_UnknownIDIsNotFound(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	w := do(g, http.MethodGet, "/blogs/65f1c0de0000000000000000", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedID_IsInternalError(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"T","content":"C","author":"A"}`},
		{http.MethodDelete, ""},
	} {
		w := do(g, tc.method, "/blogs/not-an-id", tc.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, tc.method)
		body := decode(t, w)
		assert.NotEmpty(t, body["error"], tc.method)
	}
}

func TestUpdate_TimestampsAndPartialBodies(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	w := do(g, http.MethodPost, "/blogs", `{"title":"T","content":"C","author":"A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// partial body rejected and the document stays unchanged
	w = do(g, http.MethodPut, "/blogs/"+created.ID, `{"title":"only title"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(g, http.MethodGet, "/blogs/"+created.ID, "")
	assert.Equal(t, "T", decode(t, w)["title"])

	type updated struct {
		Title     string    `json:"title"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	time.Sleep(5 * time.Millisecond)
	w = do(g, http.MethodPut, "/blogs/"+created.ID, `{"title":"T2","content":"C2","author":"A2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var u1 updated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u1))
	assert.True(t, u1.UpdatedAt.After(created.CreatedAt))

	time.Sleep(5 * time.Millisecond)
	w = do(g, http.MethodPut, "/blogs/"+created.ID, `{"title":"T3","content":"C3","author":"A3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var u2 updated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u2))
	assert.True(t, u2.UpdatedAt.After(u1.UpdatedAt))

	w = do(g, http.MethodGet, "/blogs/"+created.ID, "")
	got := decode(t, w)
	assert.Equal(t, "T3", got["title"])
	assert.Equal(t, "C3", got["content"])
	assert.Equal(t, "A3", got["author"])
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	g := newEngine(service.NewMemoryService())
	w := do(g, http.MethodPut, "/blogs/65f1c0de0000000000000000", `{"title":"T","content":"C","author":"A"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmptyIDParam(t *testing.T) {
	h := New(service.NewMemoryService())
	for name, fn := range map[string]gin.HandlerFunc{"get": h.Get, "update": h.Update, "delete": h.Delete} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/blogs/", nil)
		fn(c)
		require.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, service.MsgMissingID, decode(t, w)["message"], name)
	}
}

// brokenRepo fails every call the way a lost connection would.
type brokenRepo struct{}

var errDown = errors.New("connection() error occurred during connection handshake")

func (brokenRepo) Create(context.Context, *blog.Post) error { return errDown }
func (brokenRepo) List(context.Context) ([]*blog.Post, error) { return nil, errDown }
func (brokenRepo) Get(context.Context, string) (*blog.Post, error) { return nil, errDown }
func (brokenRepo) Delete(context.Context, string) error { return errDown }
func (brokenRepo) Update(context.Context, string, blog.Fields) (*blog.Post, error) {
	return nil, errDown
}

func TestStoreFailure_IncludesCause(t *testing.T) {
	g := newEngine(service.New(brokenRepo{}))
	id := "65f1c0de0000000000000000"
	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodPost, "/blogs", `{"title":"T","content":"C","author":"A"}`, service.MsgCreateFailed},
		{http.MethodGet, "/blogs", "", service.MsgListFailed},
		{http.MethodGet, "/blogs/" + id, "", service.MsgGetFailed},
		{http.MethodPut, "/blogs/" + id, `{"title":"T","content":"C","author":"A"}`, service.MsgUpdateFailed},
		{http.MethodDelete, "/blogs/" + id, "", service.MsgDeleteFailed},
	}
	for _, tc := range cases {
		w := do(g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, tc.method+" "+tc.path)
		body := decode(t, w)
		assert.Equal(t, tc.msg, body["message"])
		assert.Equal(t, errDown.Error(), body["error"])
	}
}

func TestGuard_OnlyWrapsWrites(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "denied"})
	}
	g := newEngine(service.NewMemoryService(), deny)

	assert.Equal(t, http.StatusOK, do(g, http.MethodGet, "/blogs", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/blogs", `{"title":"T","content":"C","author":"A"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPut, "/blogs/65f1c0de0000000000000000", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodDelete, "/blogs/65f1c0de0000000000000000", "").Code)
	assert.Zero(t, count(t, g))
}
