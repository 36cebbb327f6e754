package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const predictionBody = `[[
	{"label": "neutral", "score": 0.970521},
	{"label": "approval", "score": 0.012452},
	{"label": "annoyance", "score": 0.007191}
]]`

func newTestClient(srv *httptest.Server) *Client {
	c := New("test-token")
	c.BaseURL = srv.URL + "/"
	c.HTTPClient = srv.Client()
	c.sleep = func(time.Duration) {}
	return c
}

func TestAnalyze_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "feeling good today", req["inputs"])

		_, _ = w.Write([]byte(predictionBody))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Analyze(context.Background(), "feeling good today")
	require.NoError(t, err)

	assert.Equal(t, "neutral", got.DominantEmotion)
	assert.Len(t, got.Emotions, 3)
	assert.InDelta(t, 0.970521, got.Emotions["neutral"], 1e-9)
	assert.False(t, got.Timestamp.IsZero())
}

func TestAnalyze_RetriesWhileModelLoads(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": "Model is currently loading", "estimated_time": 12.5}`))
			return
		}
		_, _ = w.Write([]byte(predictionBody))
	}))
	defer srv.Close()

	var waits []time.Duration
	c := newTestClient(srv)
	c.sleep = func(d time.Duration) { waits = append(waits, d) }

	got, err := c.Analyze(context.Background(), "entry")
	require.NoError(t, err)
	assert.Equal(t, "neutral", got.DominantEmotion)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{
		time.Duration(12.5 * float64(time.Second)),
		time.Duration(12.5 * float64(time.Second)),
	}, waits)
}

func TestAnalyze_LoadWaitIsCapped(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": "Model is currently loading", "estimated_time": 300}`))
			return
		}
		_, _ = w.Write([]byte(predictionBody))
	}))
	defer srv.Close()

	var waits []time.Duration
	c := newTestClient(srv)
	c.sleep = func(d time.Duration) { waits = append(waits, d) }

	_, err := c.Analyze(context.Background(), "entry")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{20 * time.Second}, waits)
}

func TestAnalyze_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "Model is currently loading", "estimated_time": 5}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "entry")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, calls)
}

func TestAnalyze_OtherErrorsAreNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "entry")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, calls)
}

func TestAnalyze_PlainServiceUnavailableIsNotRetried(t *testing.T) {
	// A 503 without an estimated load time is a hard failure.
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "overloaded"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "entry")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, calls)
}

func TestProcessPredictions_Empty(t *testing.T) {
	_, err := processPredictions([]byte(`[]`))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = processPredictions([]byte(`[[]]`))
	assert.ErrorIs(t, err, ErrUnavailable)
}
