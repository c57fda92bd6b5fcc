package clients_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/pkg/testkit"
)

func TestBackend_SignupDecodesFarmer(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/signup", 201,
		`{"id":42,"name":"Abel","email":"abel@example.com","phone":"+251911223344"}`)
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	farmer, err := b.Signup(context.Background(), models.FarmerSignupData{
		Name: "Abel", Email: "abel@example.com", Password: "secret", Phone: "+251911223344",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), farmer.ID)
	assert.Equal(t, "+251911223344", farmer.Phone)
}

func TestBackend_ErrorBodyBecomesMessage(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/signup", 409, "Email already registered")
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	_, err := b.Signup(context.Background(), models.FarmerSignupData{})

	var re *clients.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 409, re.Status)
	assert.Equal(t, "Email already registered", re.Message)
}

func TestBackend_EmptyErrorBodyFallsBackToTemplate(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/login", 500, "")
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	_, err := b.Login(context.Background(), models.FarmerLoginData{Email: "a@b.com", Password: "x"})

	var re *clients.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "login failed with status 500", re.Message)
}

func TestBackend_TransportFailureIsTyped(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.OnError("POST", "/api/farmers/login", errors.New("connection refused"))
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	_, err := b.Login(context.Background(), models.FarmerLoginData{Email: "a@b.com", Password: "x"})

	var te *clients.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "backend")
	assert.Contains(t, te.Error(), "check your network connection")
}

func TestBackend_ProbeReachable(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.On("OPTIONS", "/api/farmers/signup", 404, "")
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	assert.True(t, b.Probe(context.Background()))
}

func TestBackend_ProbeUnreachable(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.OnError("OPTIONS", "/api/farmers/signup", errors.New("no route to host"))
	defer mt.Install()()

	b := clients.NewBackend("http://backend.test")
	assert.False(t, b.Probe(context.Background()))
}
