package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

const DEFAULT_ABSA_ENDPOINT = "https://kanithisathvik-absa-classifier.hf.space/classify"

var (
	absaInstance *ABSAClient
	absaOnce     sync.Once
)

// ABSAClient talks to the hosted aspect-sentiment classification
// service. One request covers one review sentence and the full aspect
// list; there is no retry here, a failed call is the caller's signal to
// fall back to the local heuristic.
type ABSAClient struct {
	Client   *http.Client
	Endpoint string
}

func GetABSAClient() *ABSAClient {
	var timeout time.Duration
	env := os.Getenv("APP_ENV")
	if env == "production" {
		timeout = 10 * time.Second
	} else {
		timeout = 30 * time.Second
	}
	absaOnce.Do(func() {
		endpoint := os.Getenv("ABSA_ENDPOINT")
		if endpoint == "" {
			endpoint = DEFAULT_ABSA_ENDPOINT
		}
		slog.Info("[ABSAClient] Initializing Client",
			slog.Duration("timeout", timeout),
			slog.String("endpoint", endpoint),
			slog.String("env", env))
		absaInstance = &ABSAClient{
			Client:   &http.Client{Timeout: timeout},
			Endpoint: endpoint,
		}
	})
	return absaInstance
}

// ClassifyAspects posts one (sentence, aspects) pair and returns the
// raw decoded payload. The service does not keep a stable response
// shape, so the result is left untyped for the response parser.
func (a *ABSAClient) ClassifyAspects(ctx context.Context, request models.ClassifierRequest) (any, error) {
	body, err := json.Marshal(request)
	if err != nil {
		slog.Error("[ABSAClient] Failed to marshal request",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[ABSAClient] Failed to build request",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	resp, err := a.Client.Do(req)
	if err != nil {
		slog.Warn("[ABSAClient] Request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Warn("[ABSAClient] Classifier returned error status",
			slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[ABSAClient] Failed to read response",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		// The service sometimes replies with bare text; hand it over
		// as-is instead of failing the call.
		slog.Debug("[ABSAClient] Response is not JSON, treating as raw text",
			getPreview(respBody))
		return string(respBody), nil
	}

	slog.Info("[ABSAClient] Classification request successful",
		slog.Duration("elapsed", time.Since(start)))
	return payload, nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
