package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/config"
	gebhttp "github.com/ethioagri/gebeya/pkg/http"
	"github.com/ethioagri/gebeya/pkg/metrics"
)

// MaxUploadBytes is the analyzer's file size ceiling. Oversized payloads
// are rejected locally — the server would refuse them anyway.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Analyzer talks to the crop image-analysis service.
type Analyzer struct {
	base string
}

// NewAnalyzer creates a client for the given base URL.
func NewAnalyzer(baseURL string) *Analyzer {
	return &Analyzer{base: strings.TrimRight(baseURL, "/")}
}

// NewAnalyzerFromConfig creates a client for ANALYZER_URL.
func NewAnalyzerFromConfig() *Analyzer {
	return NewAnalyzer(config.AnalyzerURL())
}

// Analyze submits one image for disease analysis.
//
// The payload is validated before any request goes out: it must be
// image-typed and no larger than MaxUploadBytes. Validation failures
// return a *ValidationError without touching the network.
func (a *Analyzer) Analyze(ctx context.Context, filename, contentType string, content []byte) (models.AnalysisResult, error) {
	if len(content) == 0 {
		return models.AnalysisResult{}, &ValidationError{Message: "no file provided"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.AnalysisResult{}, &ValidationError{Message: "file must be an image"}
	}
	if len(content) > MaxUploadBytes {
		return models.AnalysisResult{}, &ValidationError{Message: "file size must be less than 10MB"}
	}

	metrics.ObserveUpload(len(content))
	start := time.Now()

	resp, err := gebhttp.Post(a.base + "/api/analyze").
		File("file", filename, contentType, content).
		WithContext(ctx).
		Send()
	if err != nil {
		metrics.ObserveRemote("analyzer", "analyze", "error", start)
		return models.AnalysisResult{}, &TransportError{Service: "analyzer", Err: err}
	}
	metrics.ObserveRemote("analyzer", "analyze", strconv.Itoa(resp.StatusCode), start)

	if !resp.OK() {
		return models.AnalysisResult{}, analyzerError("analysis", resp)
	}

	var result models.AnalysisResult
	if err := resp.JSON(&result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("analyzer: decode response: %w", err)
	}
	return result, nil
}

// Health fetches the analyzer's health-check report.
func (a *Analyzer) Health(ctx context.Context) (models.AnalyzerHealth, error) {
	start := time.Now()

	resp, err := gebhttp.Get(a.base + "/api/health").WithContext(ctx).Send()
	if err != nil {
		metrics.ObserveRemote("analyzer", "health", "error", start)
		return models.AnalyzerHealth{}, &TransportError{Service: "analyzer", Err: err}
	}
	metrics.ObserveRemote("analyzer", "health", strconv.Itoa(resp.StatusCode), start)

	if !resp.OK() {
		return models.AnalyzerHealth{}, analyzerError("health check", resp)
	}

	var health models.AnalyzerHealth
	if err := resp.JSON(&health); err != nil {
		return models.AnalyzerHealth{}, fmt.Errorf("analyzer: decode health: %w", err)
	}
	return health, nil
}

// analyzerError reads the FastAPI-style {"detail": "..."} error body,
// falling back to a generic message when the body isn't usable.
func analyzerError(op string, resp *gebhttp.Response) *RemoteError {
	var body struct {
		Detail string `json:"detail"`
	}
	msg := ""
	if err := json.Unmarshal(resp.Raw, &body); err == nil {
		msg = strings.TrimSpace(body.Detail)
	}
	if msg == "" {
		msg = fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
	}
	return &RemoteError{Status: resp.StatusCode, Message: msg}
}
