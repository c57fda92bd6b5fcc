package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/app/services"
	"github.com/ethioagri/gebeya/pkg/kv"
	"github.com/ethioagri/gebeya/pkg/testkit"
)

func newAuth(t *testing.T) (*services.AuthService, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	return services.NewAuthService(store, clients.NewBackend("http://backend.test")), store
}

func TestCurrent_DefaultsToLoggedOut(t *testing.T) {
	svc, _ := newAuth(t)

	state := svc.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.False(t, svc.IsAuthenticated())
}

func TestCurrent_CorruptSessionDegradesToLoggedOut(t *testing.T) {
	svc, store := newAuth(t)
	store.PutRaw("authState", []byte("{{corrupt"))

	state := svc.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
}

func TestSignupFarmer_NormalizesPhoneAndLogsIn(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/signup", 201,
		`{"id":7,"name":"Abel","email":"abel@example.com","phone":"+251911223344"}`)
	defer mt.Install()()

	farmer, err := svc.SignupFarmer(context.Background(), models.FarmerSignupData{
		Name:     "Abel",
		Email:    "abel@example.com",
		Password: "secret",
		Phone:    "911223344",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), farmer.ID)

	// The outgoing payload carries the international form.
	assert.Contains(t, string(mt.LastBody()), `"+251911223344"`)

	state := svc.Current()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "Abel", state.User.Name)
	assert.Equal(t, models.UserTypeFarmer, state.UserType)
}

func TestSignupFarmer_InvalidInputSkipsNetwork(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	defer mt.Install()()

	_, err := svc.SignupFarmer(context.Background(), models.FarmerSignupData{
		Name:     "Abel",
		Email:    "not-an-email",
		Password: "secret",
		Phone:    "911223344",
	})

	var ve *clients.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, mt.Calls("", ""), "validation failures must not reach the backend")
	assert.False(t, svc.IsAuthenticated())
}

func TestLoginFarmer_StoresReturnedIdentity(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/login", 200,
		`{"id":7,"name":"Abel","email":"abel@example.com"}`)
	defer mt.Install()()

	farmer, err := svc.LoginFarmer(context.Background(), models.FarmerLoginData{
		Email:    "abel@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Abel", farmer.Name)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginFarmer_RejectedCredentialsStayLoggedOut(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	mt.On("POST", "/api/farmers/login", 401, "Invalid email or password")
	defer mt.Install()()

	_, err := svc.LoginFarmer(context.Background(), models.FarmerLoginData{
		Email:    "abel@example.com",
		Password: "wrong",
	})

	var re *clients.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 401, re.Status)
	assert.Equal(t, "Invalid email or password", re.Message)
	assert.False(t, svc.IsAuthenticated())
}

func TestLoginCustomer_SynthesizesGuestFromEmail(t *testing.T) {
	svc, _ := newAuth(t)

	guest, err := svc.LoginCustomer("hana@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(1), guest.ID)
	assert.Equal(t, "hana", guest.Name)

	state := svc.Current()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, models.UserTypeCustomer, state.UserType)
}

func TestLogout_IsIdempotent(t *testing.T) {
	svc, _ := newAuth(t)

	_, err := svc.LoginCustomer("hana@example.com")
	require.NoError(t, err)

	svc.Logout()
	svc.Logout()

	assert.False(t, svc.IsAuthenticated())
}

func TestTestConnection_AnyResponseCounts(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	mt.On("OPTIONS", "/api/farmers/signup", 500, "")
	defer mt.Install()()

	assert.True(t, svc.TestConnection(context.Background()),
		"an error status still proves the server is reachable")
}

func TestTestConnection_TransportFailure(t *testing.T) {
	svc, _ := newAuth(t)

	mt := testkit.NewMockTransport()
	mt.OnError("OPTIONS", "/api/farmers/signup", errors.New("connection refused"))
	defer mt.Install()()

	assert.False(t, svc.TestConnection(context.Background()))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+251911223344", services.NormalizePhone("911223344"))
	assert.Equal(t, "+251911223344", services.NormalizePhone("  911223344 "))
	assert.Equal(t, "+251911223344", services.NormalizePhone("+251911223344"))
}
