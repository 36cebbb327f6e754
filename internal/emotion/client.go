// Package emotion holds the client for the text-emotion classifier
// collaborator.
package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable reports a transport failure, an error status, or a model
// that never finished loading within the retry budget.
var ErrUnavailable = errors.New("emotion classifier unavailable")

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models/"
	defaultModel   = "SamLowe/roberta-base-go_emotions"

	maxAttempts = 3
	maxLoadWait = 20 * time.Second
)

// Analysis is the processed classifier output for one block of text.
type Analysis struct {
	Emotions        map[string]float64 `json:"emotions"`
	DominantEmotion string             `json:"dominant_emotion"`
	Timestamp       time.Time          `json:"timestamp"`
}

// Client calls the HuggingFace inference API.
type Client struct {
	APIToken   string
	Model      string
	BaseURL    string
	HTTPClient *http.Client

	// sleep is swappable so retry timing can be tested without waiting.
	sleep func(time.Duration)
}

func New(apiToken string) *Client {
	return &Client{
		APIToken:   apiToken,
		Model:      defaultModel,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      time.Sleep,
	}
}

// prediction is one (label, score) pair; the API returns a list of lists.
type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type loadingResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Analyze classifies the emotions in text. A 503 carrying an estimated
// load time is retried after sleeping the suggested interval (capped);
// any other failure surfaces immediately.
func (c *Client) Analyze(ctx context.Context, text string) (Analysis, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		analysis, retryAfter, err := c.analyzeOnce(ctx, text)
		if err == nil {
			return analysis, nil
		}
		if retryAfter <= 0 {
			return Analysis{}, err
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"wait":    retryAfter,
		}).Info("emotion model is loading, retrying")

		c.sleep(retryAfter)
	}
	return Analysis{}, fmt.Errorf("%w: model failed to load after %d attempts", ErrUnavailable, maxAttempts)
}

// analyzeOnce performs a single API call. A positive retryAfter marks the
// failure as a transient model-loading state.
func (c *Client) analyzeOnce(ctx context.Context, text string) (Analysis, time.Duration, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Analysis{}, 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+c.Model, bytes.NewReader(body))
	if err != nil {
		return Analysis{}, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return Analysis{}, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Analysis{}, 0, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	switch res.StatusCode {
	case http.StatusOK:
		analysis, err := processPredictions(raw)
		if err != nil {
			return Analysis{}, 0, err
		}
		return analysis, 0, nil

	case http.StatusServiceUnavailable:
		var loading loadingResponse
		if json.Unmarshal(raw, &loading) == nil && loading.EstimatedTime > 0 {
			wait := time.Duration(loading.EstimatedTime * float64(time.Second))
			if wait > maxLoadWait {
				wait = maxLoadWait
			}
			return Analysis{}, wait, fmt.Errorf("%w: model loading", ErrUnavailable)
		}
		return Analysis{}, 0, fmt.Errorf("%w: status 503: %s", ErrUnavailable, raw)

	default:
		return Analysis{}, 0, fmt.Errorf("%w: status %d: %s", ErrUnavailable, res.StatusCode, raw)
	}
}

// processPredictions flattens the API's list-of-lists reply into a score
// map and picks the dominant label.
func processPredictions(raw []byte) (Analysis, error) {
	var batches [][]prediction
	if err := json.Unmarshal(raw, &batches); err != nil {
		return Analysis{}, fmt.Errorf("%w: decode predictions: %v", ErrUnavailable, err)
	}
	if len(batches) == 0 || len(batches[0]) == 0 {
		return Analysis{}, fmt.Errorf("%w: empty prediction set", ErrUnavailable)
	}

	emotions := make(map[string]float64, len(batches[0]))
	dominant := batches[0][0]
	for _, p := range batches[0] {
		emotions[p.Label] = p.Score
		if p.Score > dominant.Score {
			dominant = p
		}
	}

	return Analysis{
		Emotions:        emotions,
		DominantEmotion: dominant.Label,
		Timestamp:       time.Now().UTC(),
	}, nil
}
