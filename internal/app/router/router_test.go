package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes_backend/internal/app/di"
	authadapters "notes_backend/internal/feature/auth/adapters"
	authhandler "notes_backend/internal/feature/auth/transport/handler"
	authusecase "notes_backend/internal/feature/auth/usecase"
	notehandler "notes_backend/internal/feature/note/transport/handler"
	noteusecase "notes_backend/internal/feature/note/usecase"
	"notes_backend/internal/platform/db"
	jwtmw "notes_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestEngine wires the full application against an in-memory SQLite database.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	gdb, err := db.OpenSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, di.Migrate(gdb))

	authUC := authusecase.NewAuthUsecase(authadapters.NewUserRepository(gdb), jwtmw.NewManager("test-secret", time.Hour))
	noteUC := noteusecase.NewNoteUsecase(di.NewNoteRepository(gdb, nil, 0))

	return NewRouter(Deps{
		Auth:        authhandler.NewAuthHandler(authUC),
		Notes:       notehandler.NewNoteHandler(noteUC),
		Verifier:    authUC,
		CORSOrigins: []string{"http://localhost:3000"},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

type apiClient struct {
	t *testing.T
	r http.Handler
}

func (a apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

// signup registers and signs in a user, returning its token and ID.
func (a apiClient) signup(username, email, password string) (string, string) {
	a.t.Helper()

	code, _ := a.do(http.MethodPost, "/api/auth/signup", "", gin.H{"username": username, "email": email, "password": password})
	require.Equal(a.t, http.StatusCreated, code)
	code, resp := a.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code)
	return resp["token"].(string), resp["user"].(map[string]any)["id"].(string)
}

func (a apiClient) addNote(token string, body gin.H) map[string]any {
	a.t.Helper()

	code, resp := a.do(http.MethodPost, "/api/note/add", token, body)
	require.Equal(a.t, http.StatusCreated, code, "resp: %v", resp)
	return resp["note"].(map[string]any)
}

func noteIDs(resp map[string]any) []string {
	var out []string
	for _, n := range resp["notes"].([]any) {
		out = append(out, n.(map[string]any)["id"].(string))
	}
	return out
}

func TestRouter_Root(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API is running...", w.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}

	code, resp := api.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["status"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}

	code, resp := api.do(http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, float64(404), resp["statusCode"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/note/all", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_AuthScenario(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}

	code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{"username": "u1", "email": "e1@example.com", "password": "p1p1p1"})
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, gin.H{"success": true, "message": "User created successfully"}, gin.H(resp))

	t.Run("second signup with same email fails", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{"username": "other", "email": "E1@example.com", "password": "another1"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "User already exists", resp["message"])
	})

	t.Run("short password is rejected", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{"username": "x", "email": "x@example.com", "password": "12345"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, resp["success"])
	})

	t.Run("password over 72 bytes is a client error", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{"username": "y", "email": "y@example.com", "password": strings.Repeat("x", 73)})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Password must be at most 72 bytes long", resp["message"])
	})

	var token, userID string
	t.Run("signin succeeds and token verifies to the user", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "e1@example.com", "password": "p1p1p1"})

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "Login successful!", resp["message"])
		user := resp["user"].(map[string]any)
		assert.NotContains(t, user, "password")
		token = resp["token"].(string)
		userID = user["id"].(string)
		require.NotEmpty(t, token)

		code, resp = api.do(http.MethodGet, "/api/auth/check", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, userID, resp["user"].(map[string]any)["id"])
		assert.Equal(t, "u1", resp["user"].(map[string]any)["username"])
	})

	t.Run("signin with wrong password is unauthorized", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "e1@example.com", "password": "wrongpw"})

		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Wrong credentials", resp["message"])
		assert.NotContains(t, resp, "token")
	})

	t.Run("signin with unknown email is not found", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "unknown@example.com", "password": "p1p1p1"})

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "User not found", resp["message"])
	})

	t.Run("signout is stateless", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/auth/signout", "", nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Logged out successfully", resp["message"])
	})
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"missing token", "", "Unauthorized, token missing"},
		{"garbage token", "not-a-jwt", "Token is not valid"},
	}
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/note/all"},
		{http.MethodPost, "/api/note/add"},
		{http.MethodPut, "/api/note/edit/x"},
		{http.MethodPut, "/api/note/update-note-pinned/x"},
		{http.MethodGet, "/api/note/search?query=a"},
		{http.MethodDelete, "/api/note/delete/x"},
		{http.MethodGet, "/api/auth/check"},
	}
	for _, tt := range tests {
		for _, rt := range routes {
			t.Run(tt.name+" "+rt.method+" "+rt.path, func(t *testing.T) {
				code, resp := api.do(rt.method, rt.path, tt.token, gin.H{"title": "t", "content": "c"})

				assert.Equal(t, http.StatusUnauthorized, code)
				assert.Equal(t, tt.message, resp["message"])
			})
		}
	}

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := jwtmw.NewManager("other-secret", time.Hour).GenerateToken("someone")
		require.NoError(t, err)

		code, _ := api.do(http.MethodGet, "/api/note/all", forged, nil)

		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestRouter_NoteScenario(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}
	token, userID := api.signup("u1", "u1@example.com", "secret1")

	first := api.addNote(token, gin.H{"title": "First", "content": "body one"})
	note := api.addNote(token, gin.H{"title": "T", "content": "C", "tags": []string{"b", "a", "b"}})

	t.Run("add preserves fields verbatim", func(t *testing.T) {
		assert.Equal(t, "T", note["title"])
		assert.Equal(t, "C", note["content"])
		assert.Equal(t, []any{"b", "a", "b"}, note["tags"])
		assert.Equal(t, false, note["isPinned"])
		assert.Equal(t, userID, note["userId"])
		assert.Equal(t, []any{}, first["tags"])
	})

	t.Run("add without content is rejected", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/note/add", token, gin.H{"title": "only"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Title and content are required", resp["message"])
	})

	t.Run("put on add route also creates", func(t *testing.T) {
		code, resp := api.do(http.MethodPut, "/api/note/add", token, gin.H{"title": "via put", "content": "c"})

		require.Equal(t, http.StatusCreated, code)
		id := resp["note"].(map[string]any)["id"].(string)
		code, _ = api.do(http.MethodDelete, "/api/note/delete/"+id, token, nil)
		require.Equal(t, http.StatusOK, code)
	})

	t.Run("pinning via edit moves the note first", func(t *testing.T) {
		firstID := first["id"].(string)

		code, resp := api.do(http.MethodPut, "/api/note/edit/"+firstID, token, gin.H{"isPinned": true})

		require.Equal(t, http.StatusOK, code)
		edited := resp["note"].(map[string]any)
		assert.Equal(t, true, edited["isPinned"])
		assert.Equal(t, "First", edited["title"], "unsupplied fields stay unchanged")

		code, resp = api.do(http.MethodGet, "/api/note/all", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, []string{firstID, note["id"].(string)}, noteIDs(resp))
		assert.Equal(t, true, resp["notes"].([]any)[0].(map[string]any)["isPinned"])
	})

	t.Run("edit without fields is rejected", func(t *testing.T) {
		code, resp := api.do(http.MethodPut, "/api/note/edit/"+note["id"].(string), token, gin.H{})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "No changes provided", resp["message"])
	})

	t.Run("explicit pin and unpin", func(t *testing.T) {
		path := "/api/note/update-note-pinned/" + note["id"].(string)

		code, resp := api.do(http.MethodPut, path, token, gin.H{"isPinned": true})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["note"].(map[string]any)["isPinned"])

		// Setting the same state again is idempotent.
		code, _ = api.do(http.MethodPut, path, token, gin.H{"isPinned": true})
		require.Equal(t, http.StatusOK, code)

		code, resp = api.do(http.MethodPut, path, token, gin.H{"isPinned": false})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, resp["note"].(map[string]any)["isPinned"])

		code, resp = api.do(http.MethodPut, path, token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "isPinned is required", resp["message"])
	})
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	api := apiClient{t, newTestEngine(t)}
	aliceToken, _ := api.signup("alice", "alice@example.com", "secret1")
	bobToken, _ := api.signup("bob", "bob@example.com", "secret2")

	aliceNote := api.addNote(aliceToken, gin.H{"title": "Alice foo", "content": "private"})
	aliceID := aliceNote["id"].(string)
	api.addNote(bobToken, gin.H{"title": "Bob", "content": "FOOD list", "tags": []string{"misc"}})
	bobTagged := api.addNote(bobToken, gin.H{"title": "Other", "content": "x", "tags": []string{"Foo"}})
	api.addNote(bobToken, gin.H{"title": "Nothing", "content": "here"})

	t.Run("bob cannot edit, pin or delete alice's note", func(t *testing.T) {
		code, resp := api.do(http.MethodPut, "/api/note/edit/"+aliceID, bobToken, gin.H{"title": "hacked"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Note not found or user unauthorized", resp["message"])

		code, _ = api.do(http.MethodPut, "/api/note/update-note-pinned/"+aliceID, bobToken, gin.H{"isPinned": true})
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = api.do(http.MethodDelete, "/api/note/delete/"+aliceID, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, code)

		code, resp = api.do(http.MethodGet, "/api/note/all", aliceToken, nil)
		require.Equal(t, http.StatusOK, code)
		notes := resp["notes"].([]any)
		require.Len(t, notes, 1)
		got := notes[0].(map[string]any)
		assert.Equal(t, "Alice foo", got["title"])
		assert.Equal(t, false, got["isPinned"])
	})

	t.Run("lists are per owner", func(t *testing.T) {
		_, resp := api.do(http.MethodGet, "/api/note/all", bobToken, nil)

		assert.Len(t, resp["notes"], 3)
	})

	t.Run("search only returns the caller's matches", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/note/search?query=foo", bobToken, nil)

		require.Equal(t, http.StatusOK, code)
		ids := noteIDs(resp)
		assert.Len(t, ids, 2)
		assert.Contains(t, ids, bobTagged["id"])
		assert.NotContains(t, ids, aliceID)
	})

	t.Run("search ignores surrounding whitespace", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/note/search?query=%20foo%20", bobToken, nil)

		require.Equal(t, http.StatusOK, code)
		assert.Len(t, noteIDs(resp), 2)
	})

	t.Run("blank search is rejected", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/note/search?query=", bobToken, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Search query is required", resp["message"])
	})

	t.Run("owner deletes once, then not found", func(t *testing.T) {
		code, resp := api.do(http.MethodDelete, "/api/note/delete/"+aliceID, aliceToken, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Note deleted successfully", resp["message"])

		code, _ = api.do(http.MethodDelete, "/api/note/delete/"+aliceID, aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, code)

		_, resp = api.do(http.MethodGet, "/api/note/all", aliceToken, nil)
		assert.Equal(t, []any{}, resp["notes"])
	})
}
