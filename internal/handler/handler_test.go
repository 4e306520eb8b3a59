package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexacrm/internal/repository"
	"nexacrm/internal/service/ai"
	"nexacrm/internal/service/dashboard"
	"nexacrm/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestMux wires the full /api surface over a fresh temp store, with the
// AI service backed by the given completer.
func newTestMux(t *testing.T, completer ai.Completer) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()

	st, err := store.Open(store.Options{
		Path:   filepath.Join(t.TempDir(), "db.json"),
		Logger: logger,
	})
	require.NoError(t, err)

	contactHandler := NewContactHandler(repository.NewContactRepository(st, logger), logger)
	opportunityHandler := NewOpportunityHandler(repository.NewOpportunityRepository(st, logger), logger)
	taskHandler := NewTaskHandler(repository.NewTaskRepository(st, logger), logger)
	dashboardHandler := NewDashboardHandler(dashboard.NewService(st, logger), logger)
	aiHandler := NewAIHandler(ai.NewService(completer, logger), logger)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/contacts", contactHandler.List)
	api.POST("/contacts", contactHandler.Create)
	api.PUT("/contacts/:id", contactHandler.Update)
	api.DELETE("/contacts/:id", contactHandler.Delete)
	api.GET("/opportunities", opportunityHandler.List)
	api.POST("/opportunities", opportunityHandler.Create)
	api.PUT("/opportunities/:id", opportunityHandler.Update)
	api.DELETE("/opportunities/:id", opportunityHandler.Delete)
	api.GET("/tasks", taskHandler.List)
	api.POST("/tasks", taskHandler.Create)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.DELETE("/tasks/:id", taskHandler.Delete)
	api.GET("/metrics", dashboardHandler.Metrics)
	api.POST("/ai/summarize", aiHandler.Summarize)
	api.POST("/ai/predict", aiHandler.Predict)
	api.POST("/ai/advise", aiHandler.Advise)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func doRaw(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
