package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rolltrack/rolltrack/internal/insights"
	"github.com/rolltrack/rolltrack/internal/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestInsights_Overview() {
	ctx := context.Background()

	// a small training history so the analyzer has something to chew on
	for i := 0; i < 4; i++ {
		s.addSession(ctx, training.Session{
			Type:              training.ClassTypeGi,
			DurationMinutes:   60,
			Intensity:         6,
			RoundsSparred:     4,
			TechniquesDrilled: []string{"armbar", "triangle"},
			HappenedAt:        time.Now().AddDate(0, 0, -i),
		})
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/insights/overview", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var overview insights.Overview
	require.NoError(s.T(), json.Unmarshal(respBytes, &overview))
	assert.False(s.T(), overview.ComputedAt.IsZero())
	assert.GreaterOrEqual(s.T(), overview.Streaks.TotalTrainingDays, 1)
	assert.NotEmpty(s.T(), overview.Suggestion.Action)
}

func (s *IntegrationTestSuite) TestInsights_Suggestion() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/insights/suggestion", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var suggestion insights.Suggestion
	require.NoError(s.T(), json.Unmarshal(respBytes, &suggestion))
	assert.NotEmpty(s.T(), suggestion.Action)
}

func (s *IntegrationTestSuite) TestWhoop_StatusNotConnected() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/whoop/status", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	assert.JSONEq(s.T(), `{"connected":false}`, string(respBytes))
}

func (s *IntegrationTestSuite) TestWhoop_SyncNotConnected() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/whoop/sync", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)
}
