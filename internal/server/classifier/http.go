package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/sony/gobreaker"
)

type classifyResponse struct {
	Label string `json:"label"`
}

// HTTPClassifier posts image bytes to a classification service and reads
// {"label": "..."} back. Calls go through a circuit breaker so a failing
// service is not hit on every upload.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
}

type Option func(*HTTPClassifier)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClassifier) { h.client = c }
}

func NewHTTPClassifier(endpoint string, opts ...Option) *HTTPClassifier {
	h := &HTTPClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(h)
	}

	h.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || err == common.ErrNoDetection
		},
	})

	return h
}

func (h *HTTPClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	label, err := h.cb.Execute(func() (interface{}, error) {
		return h.classify(ctx, image)
	})
	if err != nil {
		return "", err
	}
	return label.(string), nil
}

func (h *HTTPClassifier) classify(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("classify: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode classify response: %w", err)
	}

	label := strings.TrimSpace(out.Label)
	if label == "" {
		return "", common.ErrNoDetection
	}
	return label, nil
}
