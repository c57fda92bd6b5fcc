// Package clients wraps Gebeya's remote services behind typed Go APIs.
//
// Two services exist: the marketplace backend (farmer identity) and the
// crop image analyzer. Both translate failures into the typed errors in
// errors.go — raw transport errors never escape this package.
package clients

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/config"
	gebhttp "github.com/ethioagri/gebeya/pkg/http"
	"github.com/ethioagri/gebeya/pkg/logger"
	"github.com/ethioagri/gebeya/pkg/metrics"
)

// Backend talks to the marketplace identity API.
type Backend struct {
	base string
}

// NewBackend creates a client for the given base URL.
func NewBackend(baseURL string) *Backend {
	return &Backend{base: strings.TrimRight(baseURL, "/")}
}

// NewBackendFromConfig creates a client for BACKEND_URL.
func NewBackendFromConfig() *Backend {
	return NewBackend(config.BackendURL())
}

// Signup registers a farmer account. The returned Farmer is the record the
// server persisted, including its assigned id.
func (b *Backend) Signup(ctx context.Context, data models.FarmerSignupData) (models.Farmer, error) {
	return b.postFarmer(ctx, "signup", "/api/farmers/signup", data)
}

// Login authenticates a farmer by email and password.
func (b *Backend) Login(ctx context.Context, data models.FarmerLoginData) (models.Farmer, error) {
	return b.postFarmer(ctx, "login", "/api/farmers/login", data)
}

func (b *Backend) postFarmer(ctx context.Context, op, path string, payload interface{}) (models.Farmer, error) {
	resp, err := b.post(ctx, op, path, payload)
	if err != nil {
		return models.Farmer{}, err
	}

	if !resp.OK() {
		return models.Farmer{}, remoteError(op, resp)
	}

	var farmer models.Farmer
	if err := resp.JSON(&farmer); err != nil {
		return models.Farmer{}, fmt.Errorf("backend: decode %s response: %w", op, err)
	}
	return farmer, nil
}

// Probe issues a pre-flight OPTIONS request against the signup endpoint.
// True means the server is reachable — any completed response counts,
// including error statuses. It says nothing about endpoint health.
func (b *Backend) Probe(ctx context.Context) bool {
	start := time.Now()
	resp, err := gebhttp.Options(b.base + "/api/farmers/signup").WithContext(ctx).Send()
	if err != nil {
		metrics.ObserveRemote("backend", "probe", "error", start)
		return false
	}

	metrics.ObserveRemote("backend", "probe", strconv.Itoa(resp.StatusCode), start)
	return true
}

func (b *Backend) post(ctx context.Context, op, path string, payload interface{}) (*gebhttp.Response, error) {
	start := time.Now()

	resp, err := gebhttp.Post(b.base + path).
		Body(payload).
		WithContext(ctx).
		Send()
	if err != nil {
		metrics.ObserveRemote("backend", op, "error", start)
		logger.Warn("backend: request failed", "operation", op, "error", err)
		return nil, &TransportError{Service: "backend", Err: err}
	}

	metrics.ObserveRemote("backend", op, strconv.Itoa(resp.StatusCode), start)
	return resp, nil
}

// remoteError builds the RemoteError for a completed failure response:
// prefer the plain-text body, fall back to a generic templated message.
func remoteError(op string, resp *gebhttp.Response) *RemoteError {
	msg := strings.TrimSpace(resp.Text())
	if msg == "" {
		msg = fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
	}
	return &RemoteError{Status: resp.StatusCode, Message: msg}
}
