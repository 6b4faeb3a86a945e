package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/courtvision/internal/platform/resilience"
	"github.com/riskibarqy/courtvision/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQStashPublisher_Enqueue(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotHeaders http.Header
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://api.courtvision.test",
		Retries:       3,
		CronSecret:    "cron-secret",
	}, nil)

	err := publisher.Enqueue(context.Background(), "v1/internal/jobs/update-game-logs",
		map[string]any{"team": "Atlanta Hawks"}, 2500*time.Millisecond, " run-1-atl ")
	require.NoError(t, err)

	assert.Equal(t, "/v2/publish/https://api.courtvision.test/v1/internal/jobs/update-game-logs", gotPath)
	assert.Equal(t, "Bearer qstash-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "Bearer cron-secret", gotHeaders.Get("Upstash-Forward-Authorization"))
	assert.Equal(t, "3", gotHeaders.Get("Upstash-Retries"))
	assert.Equal(t, "3s", gotHeaders.Get("Upstash-Delay"))
	assert.Equal(t, "run-1-atl", gotHeaders.Get("Upstash-Deduplication-Id"))
	assert.JSONEq(t, `{"team":"Atlanta Hawks"}`, gotBody)
}

func TestQStashPublisher_BreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		TargetBaseURL: "https://api.courtvision.test",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	for i := 0; i < 2; i++ {
		err := publisher.Enqueue(context.Background(), "/jobs", nil, 0, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=502")
	}

	err := publisher.Enqueue(context.Background(), "/jobs", nil, 0, "")
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, 2, calls)
}

func TestQStashPublisher_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	publisher := NewQStashPublisher(QStashPublisherConfig{BaseURL: "ftp://qstash", TargetBaseURL: "https://x"}, nil)
	err := publisher.Enqueue(context.Background(), "/jobs", nil, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	err = publisher.Enqueue(context.Background(), " / ", nil, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job path is required")
}

func TestBuildCurlPreview_MasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://qstash/v2/publish/x", "/jobs", "5s", 2, "dedupe", `{"a":"it's"}`, true)
	assert.Contains(t, preview, "Authorization: Bearer ***")
	assert.Contains(t, preview, "Upstash-Forward-Authorization: Bearer ***")
	assert.Contains(t, preview, "Upstash-Delay: 5s")
	assert.Contains(t, preview, `'{"a":"it'"'"'s"}'`)
}
