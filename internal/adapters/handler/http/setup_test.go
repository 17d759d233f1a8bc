package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterHTTP "github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/workers"
)

var handlerNow = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router *gin.Engine
	store  domain.TrackerStore
	worker *workers.PersistWorker
}

func setupTrackerRouter(t *testing.T, store domain.TrackerStore) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if store == nil {
		store = repository.NewMemoryStore()
	}

	worker := workers.NewPersistWorker(store, 16, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	t.Cleanup(func() {
		cancel()
		worker.Wait()
	})

	tracker := services.NewTrackerService(store, worker,
		services.WithClock(func() time.Time { return handlerNow }),
		services.WithLocation(time.UTC),
	)
	stats := adapterHTTP.NewStatsHandler(services.NewStatsService(tracker), time.UTC)
	adapterHTTP.SetStatsClock(stats, func() time.Time { return handlerNow })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewTrackerHandler(tracker).RegisterRoutes(api)
	adapterHTTP.NewHabitHandler(tracker).RegisterRoutes(api)
	stats.RegisterRoutes(api)

	return &testEnv{router: r, store: store, worker: worker}
}

func (e *testEnv) do(t *testing.T, method, path, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
