package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/auth/mock"
	"github.com/viant/tripclient/auth/transport"
	"github.com/viant/tripclient/envelope"
)

type group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestGateway(t *testing.T, signIn bool) (*Gateway, *mock.HTTPTestServer, *credential.Store) {
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	store := credential.NewMemoryStore()
	if signIn {
		pair, err := server.IssuePair()
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), pair.AccessToken, pair.RefreshToken))
	}
	rt, err := transport.New(
		transport.WithStore(store),
		transport.WithRefreshURL(server.BaseURL+"/auth/refresh-token"),
	)
	require.NoError(t, err)
	return New(server.BaseURL, WithClient(&http.Client{Transport: rt})), server, store
}

func TestGet(t *testing.T) {
	g, _, _ := newTestGateway(t, true)
	user, err := Get[mock.User](context.Background(), g, "/auth/me")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "traveler", user.Username)
}

func TestEnvelopeFailures(t *testing.T) {
	g, server, _ := newTestGateway(t, true)
	server.Handle(http.MethodPost, "/groups", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteFailure(w, http.StatusOK, "Group name is required")
	})
	server.Handle(http.MethodGet, "/groups/empty", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteData[group](w, nil)
	})
	server.Handle(http.MethodGet, "/groups/1", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteData(w, &group{ID: "1", Name: "Alps"})
	})

	var testCases = []struct {
		description string
		method      string
		path        string
		fallback    string
		expect      *group
		expectError string
	}{
		{description: "success", method: http.MethodGet, path: "/groups/1", expect: &group{ID: "1", Name: "Alps"}},
		{description: "domain failure", method: http.MethodPost, path: "/groups", fallback: "Failed to create group", expectError: "Group name is required"},
		{description: "missing data", method: http.MethodGet, path: "/groups/empty", fallback: "Failed to get group details", expectError: "Failed to get group details"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Call[group](context.Background(), g, testCase.method, testCase.path, &group{Name: ""}, WithFallback(testCase.fallback))
			if testCase.expectError != "" {
				require.Error(t, err)
				assert.True(t, envelope.IsDomain(err))
				assert.Equal(t, testCase.expectError, err.Error())
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestStatusError(t *testing.T) {
	g, server, _ := newTestGateway(t, true)
	server.Handle(http.MethodPut, "/groups/1", func(w http.ResponseWriter, r *http.Request, subject string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"One or more validation errors occurred.","errors":{"Name":["The Name field is required."]}}`))
	})
	server.Handle(http.MethodDelete, "/groups/1", func(w http.ResponseWriter, r *http.Request, subject string) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := Get[group](context.Background(), g, "/groups/missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Resource not found", statusErr.Message)

	_, err = Put[group](context.Background(), g, "/groups/1", &group{})
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "One or more validation errors occurred.", statusErr.Message)
	assert.Equal(t, []string{"The Name field is required."}, statusErr.Errors["Name"])

	_, err = Delete[bool](context.Background(), g, "/groups/1", WithFallback("Failed to delete group"))
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Failed to delete group", statusErr.Message)
}

func TestExpiredSessionRecovers(t *testing.T) {
	g, server, store := newTestGateway(t, true)
	server.Expire()

	user, err := Get[mock.User](context.Background(), g, "/auth/me")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, 1, server.RefreshCalls())
	access, _, err := store.Access(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server.LastToken(), access)
}

func TestExpiredSessionFailsWithRefreshMessage(t *testing.T) {
	g, server, store := newTestGateway(t, true)
	server.RefreshFailure = "Refresh token expired"
	server.Expire()

	_, err := Get[mock.User](context.Background(), g, "/auth/me")
	require.Error(t, err)
	assert.Equal(t, "Refresh token expired", err.Error())
	var refreshErr *transport.RefreshError
	assert.True(t, errors.As(err, &refreshErr))
	assert.False(t, store.HasCredentials(context.Background()))
}

func TestUnauthorizedAfterRefresh(t *testing.T) {
	g, server, _ := newTestGateway(t, true)
	server.RejectAll = true

	_, err := Get[mock.User](context.Background(), g, "/auth/me")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, server.RefreshCalls())
}

func TestCallOptions(t *testing.T) {
	g, server, _ := newTestGateway(t, true)
	server.Handle(http.MethodGet, "/groups/my-groups", func(w http.ResponseWriter, r *http.Request, subject string) {
		query := r.URL.Query().Encode() + "|" + r.Header.Get("X-Client")
		mock.WriteData(w, &query)
	})
	server.Handle(http.MethodGet, "/slow", func(w http.ResponseWriter, r *http.Request, subject string) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	actual, err := Get[string](context.Background(), g, "/groups/my-groups",
		WithQuery(url.Values{"pageNumber": {"2"}, "searchTerm": {""}}),
		WithHeader("X-Client", "tripctl"))
	require.NoError(t, err)
	assert.Equal(t, "pageNumber=2|tripctl", *actual)

	_, err = Get[string](context.Background(), g, "/slow", WithTimeout(50*time.Millisecond))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, server.RefreshCalls())
}

func TestMessage(t *testing.T) {
	g, _, _ := newTestGateway(t, false)
	message, err := Message(context.Background(), g, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@b.c", "otp": "123456"})
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", message)
}

func TestDo(t *testing.T) {
	g, _, _ := newTestGateway(t, true)
	resp, err := g.Do(context.Background(), http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	anEnvelope, err := envelope.Decode[mock.User](resp.Body)
	require.NoError(t, err)
	assert.True(t, anEnvelope.IsSuccess)
}

func TestBaseURL(t *testing.T) {
	g := New("http://localhost:5000/api/")
	assert.Equal(t, "http://localhost:5000/api", g.BaseURL())
	g.SetBaseURL("http://10.0.2.2:5000/api")
	assert.Equal(t, "http://10.0.2.2:5000/api", g.BaseURL())
}
