package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/mindcare/wellness-api/internal/config"
)

var ErrInvalidInference = errors.New("invalid response from mood inference service")

type Classifier interface {
	Classify(ctx context.Context, image string) (*Inference, error)
}

type httpClassifier struct {
	url    string
	client *http.Client
}

// NewClassifier returns a Classifier posting to the inference endpoint at url
// with apiKey as bearer token.
func NewClassifier(url, apiKey string) Classifier {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = 30 * time.Second

	return &httpClassifier{url: url, client: client}
}

func (c *httpClassifier) Classify(ctx context.Context, image string) (*Inference, error) {
	log := config.WithContext(ctx)

	body, err := json.Marshal(map[string]string{"image": image})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Mood inference request failed")
		return nil, fmt.Errorf("mood inference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Errorf("Mood inference returned %d: %s", resp.StatusCode, msg)
		return nil, fmt.Errorf("mood inference: status %d", resp.StatusCode)
	}

	var out struct {
		Prediction *string `json:"prediction"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInference, err)
	}
	if out.Prediction == nil || *out.Prediction == "" {
		log.Error("Mood inference returned no prediction")
		return nil, ErrInvalidInference
	}
	return &Inference{Prediction: *out.Prediction}, nil
}
