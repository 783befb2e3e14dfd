package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRegisterUserNewThenExisting(t *testing.T) {
	payload := RegisterUserRequest{Email: "register-test@example.com", PublicIP: "198.51.100.10"}

	rr := postJSON(t, testServer.RegisterUserHandler, "/user/register", payload)
	require.Equal(t, http.StatusCreated, rr.Code)

	var first RegisterUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	require.Equal(t, "New", first.Status)
	require.NotEmpty(t, first.UUID)
	require.Equal(t, float64(3000), first.AvailableCredits)

	// Registering again with the same identity must return the same UUID
	// and must not create a second row.
	rr = postJSON(t, testServer.RegisterUserHandler, "/user/register", payload)
	require.Equal(t, http.StatusOK, rr.Code)

	var second RegisterUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	require.Equal(t, "Existing", second.Status)
	require.Equal(t, first.UUID, second.UUID)

	var count int
	err := testServer.store.GetPool().QueryRow(context.Background(),
		"SELECT count(*) FROM users WHERE uuid = $1", first.UUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRegisterUserDeterministicUUID(t *testing.T) {
	require.Equal(t,
		userUUID("a@example.com", "192.0.2.1"),
		userUUID("a@example.com", "192.0.2.1"))
	require.NotEqual(t,
		userUUID("a@example.com", "192.0.2.1"),
		userUUID("a@example.com", "192.0.2.2"))
}

func TestRegisterUserSameIPDifferentEmail(t *testing.T) {
	rr := postJSON(t, testServer.RegisterUserHandler, "/user/register",
		RegisterUserRequest{Email: "ip-shared@example.com", PublicIP: "198.51.100.77"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var first RegisterUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))

	// A different email from a known IP resolves to the existing account.
	rr = postJSON(t, testServer.RegisterUserHandler, "/user/register",
		RegisterUserRequest{Email: "other@example.com", PublicIP: "198.51.100.77"})
	require.Equal(t, http.StatusOK, rr.Code)
	var second RegisterUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	require.Equal(t, "Existing", second.Status)
	require.Equal(t, first.UUID, second.UUID)
}

func TestRegisterUserMissingFields(t *testing.T) {
	rr := postJSON(t, testServer.RegisterUserHandler, "/user/register",
		RegisterUserRequest{Email: "only-email@example.com"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(t, testServer.RegisterUserHandler, "/user/register",
		RegisterUserRequest{PublicIP: "198.51.100.1"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckUserUnknownIP(t *testing.T) {
	rr := postJSON(t, testServer.CheckUserHandler, "/user/check",
		CheckUserRequest{PublicIP: "203.0.113.99"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CheckUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "New", resp.Status)
	require.Empty(t, resp.UUID)
}

func TestCheckUserRegisteredIP(t *testing.T) {
	register := RegisterUserRequest{Email: "check-test@example.com", PublicIP: "198.51.100.42"}
	rr := postJSON(t, testServer.RegisterUserHandler, "/user/register", register)
	require.Equal(t, http.StatusCreated, rr.Code)
	var registered RegisterUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registered))

	rr = postJSON(t, testServer.CheckUserHandler, "/user/check",
		CheckUserRequest{PublicIP: register.PublicIP})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CheckUserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Existing", resp.Status)
	require.Equal(t, registered.UUID, resp.UUID)
}

func TestCheckUserMissingIP(t *testing.T) {
	rr := postJSON(t, testServer.CheckUserHandler, "/user/check", CheckUserRequest{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
