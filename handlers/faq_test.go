package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/services/faq"
)

func newFAQTestRouter(t *testing.T, seed []models.FAQ) (*gin.Engine, *faq.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := faq.NewStore(filepath.Join(t.TempDir(), "faqs.json"))
	require.NoError(t, err)
	if len(seed) > 0 {
		require.NoError(t, store.ReplaceAll(seed))
	}

	h := NewFAQHandler(store, zap.NewNop())
	r := gin.New()
	r.GET("/api/faqs", h.List)
	r.PUT("/api/faqs", h.Replace)
	return r, store
}

func TestFAQReplaceSwapsWholeList(t *testing.T) {
	r, store := newFAQTestRouter(t, []models.FAQ{
		{Question: "Old question?", Answer: "Old answer.", Category: "general"},
	})

	body := `[
		{"question": "How do I book a session?", "answer": "Use the booking page.", "category": "booking"},
		{"question": "Where is the wellness center?", "answer": "Building C, second floor.", "category": "general"}
	]`
	req := httptest.NewRequest(http.MethodPut, "/api/faqs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)

	faqs := store.All()
	require.Len(t, faqs, 2)
	assert.Equal(t, "How do I book a session?", faqs[0].Question)
	assert.Equal(t, "Where is the wellness center?", faqs[1].Question)
}

func TestFAQReplaceRejectsNonArrayBody(t *testing.T) {
	r, store := newFAQTestRouter(t, []models.FAQ{
		{Question: "Kept?", Answer: "Kept.", Category: "general"},
	})

	req := httptest.NewRequest(http.MethodPut, "/api/faqs",
		strings.NewReader(`{"question": "Not a list", "answer": "Nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, store.All(), 1)
}

func TestFAQReplaceRejectsIncompleteEntry(t *testing.T) {
	r, store := newFAQTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/faqs",
		strings.NewReader(`[{"question": "No answer here"}]`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.All())
}
