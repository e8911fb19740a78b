package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rolltrack/rolltrack/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLoginLogout() {
	ctx := context.Background()

	token := doLogin(ctx, s.T())
	require.NotEmpty(s.T(), token)

	// a session-authenticated request works
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/gyms", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	// logout
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/a/logout", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	// the token is dead now
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/gyms", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	ctx := context.Background()

	loginReqJson, err := json.Marshal(loginRequest{
		Username: testUsername,
		Password: "wrong-password",
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/a/login", serverEndpoint),
		bytes.NewBuffer(loginReqJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAuth_MissingToken() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/gyms", serverEndpoint), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}
