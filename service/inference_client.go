package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"

	"gesturecontrol/config"
	"gesturecontrol/models"
)

const maxInferenceResponse = 1 << 20

// InferenceClient classifies images through a remote model server.
// The image is POSTed as PNG; the server answers with a JSON array of {label, score}
// (a batch-shaped [[...]] answer and {"error": "..."} bodies are also understood).
type InferenceClient struct {
	endpoint  string
	token     string
	model     string
	inputSize int
	http      *http.Client
}

// NewInferenceClient is called once at startup; the client is shared read-only afterwards
func NewInferenceClient(cfg config.ClassifierConfig) *InferenceClient {
	return &InferenceClient{
		endpoint:  cfg.Endpoint,
		token:     cfg.Token,
		model:     cfg.Model,
		inputSize: cfg.InputSize,
		http:      &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *InferenceClient) Model() string {
	return c.model
}

func (c *InferenceClient) Classify(ctx context.Context, img image.Image) ([]models.Label, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaleToFit(img, c.inputSize)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInferenceResponse))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrClassifierUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: inference endpoint returned %d: %s", ErrClassifierUnavailable, resp.StatusCode, snippet(body))
	}

	return parseLabels(body)
}

func parseLabels(body []byte) ([]models.Label, error) {
	var labels []models.Label
	if err := json.Unmarshal(body, &labels); err == nil {
		return labels, nil
	}

	var batch [][]models.Label
	if err := json.Unmarshal(body, &batch); err == nil {
		if len(batch) == 0 {
			return []models.Label{}, nil
		}
		return batch[0], nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrClassifierUnavailable, failure.Error)
	}

	return nil, fmt.Errorf("%w: unexpected response: %s", ErrClassifierUnavailable, snippet(body))
}

func snippet(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
