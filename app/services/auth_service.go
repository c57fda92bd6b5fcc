// Package services holds the Gebeya stores: session state and product
// collections over the kv persistence layer. These are the objects the
// CLI (and any future UI) talks to — one instance of each per process.
package services

import (
	"context"
	"strings"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/pkg/kv"
	"github.com/ethioagri/gebeya/pkg/logger"
)

// authStateKey is the single session record in the kv store.
const authStateKey = "authState"

// ethiopiaPrefix is prepended to phone numbers before signup unless the
// caller already supplied the international form.
const ethiopiaPrefix = "+251"

// AuthService owns the persisted session record.
type AuthService struct {
	store   kv.Store
	backend *clients.Backend
}

// NewAuthService wires the session store to its persistence medium and
// the identity backend.
func NewAuthService(store kv.Store, backend *clients.Backend) *AuthService {
	return &AuthService{store: store, backend: backend}
}

// Current returns the persisted session. A missing, corrupt or
// unreachable record degrades to the logged-out default — this never
// fails.
func (s *AuthService) Current() models.AuthState {
	var state models.AuthState
	if !s.store.Get(authStateKey, &state) {
		return models.LoggedOut()
	}
	return state
}

// IsAuthenticated reports whether anyone is logged in.
func (s *AuthService) IsAuthenticated() bool {
	return s.Current().IsAuthenticated
}

// SignupFarmer registers a farmer with the backend and, on success,
// stores the returned identity as the authenticated session
// (auto-login after signup).
func (s *AuthService) SignupFarmer(ctx context.Context, data models.FarmerSignupData) (models.Farmer, error) {
	if err := checkInput(data); err != nil {
		return models.Farmer{}, err
	}

	data.Phone = NormalizePhone(data.Phone)

	farmer, err := s.backend.Signup(ctx, data)
	if err != nil {
		return models.Farmer{}, err
	}

	s.saveState(models.AuthState{
		IsAuthenticated: true,
		User:            &farmer,
		UserType:        models.UserTypeFarmer,
	})
	return farmer, nil
}

// LoginFarmer authenticates against the backend and stores the returned
// identity, overwriting any previous session.
func (s *AuthService) LoginFarmer(ctx context.Context, data models.FarmerLoginData) (models.Farmer, error) {
	if err := checkInput(data); err != nil {
		return models.Farmer{}, err
	}

	farmer, err := s.backend.Login(ctx, data)
	if err != nil {
		return models.Farmer{}, err
	}

	s.saveState(models.AuthState{
		IsAuthenticated: true,
		User:            &farmer,
		UserType:        models.UserTypeFarmer,
	})
	return farmer, nil
}

// LoginCustomer stores a guest customer session synthesized from the
// email's local part. No backend endpoint exists for customers; this is
// a deliberate demo identity, not real authentication.
func (s *AuthService) LoginCustomer(email string) (models.Farmer, error) {
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}

	guest := models.Farmer{ID: 1, Name: name, Email: email}
	s.saveState(models.AuthState{
		IsAuthenticated: true,
		User:            &guest,
		UserType:        models.UserTypeCustomer,
	})
	return guest, nil
}

// Logout overwrites the session with the logged-out default. Idempotent.
func (s *AuthService) Logout() {
	s.saveState(models.LoggedOut())
}

// TestConnection issues a pre-flight request against the signup endpoint
// and reports whether the backend is reachable. Any completed response
// counts — including error statuses.
func (s *AuthService) TestConnection(ctx context.Context) bool {
	return s.backend.Probe(ctx)
}

func (s *AuthService) saveState(state models.AuthState) {
	if err := s.store.Put(authStateKey, state); err != nil {
		// A write failure means the next Current() sees stale or default
		// state; the operation itself already succeeded remotely.
		logger.Warn("auth: persist session failed", "error", err)
	}
}

// NormalizePhone converts a local Ethiopian number to international form.
// Numbers already carrying the +251 prefix pass through unchanged.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, ethiopiaPrefix) {
		return phone
	}
	return ethiopiaPrefix + phone
}
