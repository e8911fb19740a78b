package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rolltrack/rolltrack/internal/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) addSession(ctx context.Context, session training.Session) training.AddSessionResponse {
	sessionJson, err := json.Marshal(session)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/session", serverEndpoint),
		bytes.NewBuffer(sessionJson),
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addResp training.AddSessionResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &addResp))
	return addResp
}

func (s *IntegrationTestSuite) TestSessions_AddGetDelete() {
	ctx := context.Background()

	addResp := s.addSession(ctx, training.Session{
		Type:               training.ClassTypeNoGi,
		DurationMinutes:    90,
		Intensity:          8,
		RoundsSparred:      6,
		SubmissionsFor:     2,
		SubmissionsAgainst: 3,
		TechniquesDrilled:  []string{"knee cut", "body lock pass"},
		Notes:              "good rounds, tired at the end",
		HappenedAt:         time.Now().Add(-2 * time.Hour),
	})
	require.NotZero(s.T(), addResp.ID)
	assert.GreaterOrEqual(s.T(), addResp.CountThisWeek, 1)

	// get it back
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/session/%d", serverEndpoint, addResp.ID),
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

	var gotSession training.Session
	require.NoError(s.T(), json.Unmarshal(respBytes, &gotSession))
	assert.Equal(s.T(), addResp.ID, gotSession.ID)
	assert.Equal(s.T(), training.ClassTypeNoGi, gotSession.Type)
	assert.Equal(s.T(), 90, gotSession.DurationMinutes)
	assert.Equal(s.T(), 8, gotSession.Intensity)
	assert.Equal(s.T(), []string{"knee cut", "body lock pass"}, gotSession.TechniquesDrilled)

	// now remove it
	req, err = http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/session/%d", serverEndpoint, addResp.ID),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var deleteResp training.DeleteSessionResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(s.T(), addResp.ID, deleteResp.DeletedID)

	// and it is gone
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/session/%d", serverEndpoint, addResp.ID),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSessions_Update() {
	ctx := context.Background()

	addResp := s.addSession(ctx, training.Session{
		Type:            training.ClassTypeGi,
		DurationMinutes: 60,
		Intensity:       5,
		HappenedAt:      time.Now().Add(-24 * time.Hour),
	})

	updated := addResp.Session
	updated.Intensity = 7
	updated.Notes = "harder than it felt in the moment"

	updatedJson, err := json.Marshal(updated)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"PUT", fmt.Sprintf("%s/session", serverEndpoint),
		bytes.NewBuffer(updatedJson),
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var updateResp training.UpdateSessionResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &updateResp))
	assert.Equal(s.T(), addResp.ID, updateResp.UpdatedID)

	// check the change landed
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/session/%d", serverEndpoint, addResp.ID),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var gotSession training.Session
	require.NoError(s.T(), json.Unmarshal(respBytes, &gotSession))
	assert.Equal(s.T(), 7, gotSession.Intensity)
	assert.Equal(s.T(), "harder than it felt in the moment", gotSession.Notes)
}

func (s *IntegrationTestSuite) TestSessions_List() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.addSession(ctx, training.Session{
			Type:            training.ClassTypeDrilling,
			DurationMinutes: 45 + i,
			Intensity:       4,
			HappenedAt:      time.Now().Add(-time.Duration(i+1) * time.Hour),
		})
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/session/list/page/1/size/10?type=drilling", serverEndpoint),
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

	var listResp training.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))
	assert.GreaterOrEqual(s.T(), listResp.Total, 3)
	require.NotEmpty(s.T(), listResp.Sessions)
	for _, session := range listResp.Sessions {
		assert.Equal(s.T(), training.ClassTypeDrilling, session.Type)
	}
}

func (s *IntegrationTestSuite) TestSessions_ListDateRange() {
	ctx := context.Background()

	// two old private lessons and a recent one
	now := time.Now()
	s.addSession(ctx, training.Session{
		Type:            training.ClassTypePrivate,
		DurationMinutes: 60,
		Intensity:       5,
		HappenedAt:      now.AddDate(0, 0, -100),
	})
	s.addSession(ctx, training.Session{
		Type:            training.ClassTypePrivate,
		DurationMinutes: 60,
		Intensity:       6,
		HappenedAt:      now.AddDate(0, 0, -95),
	})
	s.addSession(ctx, training.Session{
		Type:            training.ClassTypePrivate,
		DurationMinutes: 60,
		Intensity:       7,
		HappenedAt:      now.Add(-time.Hour),
	})

	from := now.AddDate(0, 0, -110)
	to := now.AddDate(0, 0, -90)
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf(
			"%s/session/list/page/1/size/10?type=private&from=%s&to=%s",
			serverEndpoint,
			url.QueryEscape(from.Format(time.RFC3339)),
			url.QueryEscape(to.Format(time.RFC3339)),
		),
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

	var listResp training.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))

	// the total and the page rows must agree: the recent session is out
	assert.Equal(s.T(), 2, listResp.Total)
	require.Len(s.T(), listResp.Sessions, 2)
	for _, session := range listResp.Sessions {
		assert.False(s.T(), session.HappenedAt.Before(from))
		assert.False(s.T(), session.HappenedAt.After(to))
	}
}

func (s *IntegrationTestSuite) TestSessions_AddInvalid() {
	ctx := context.Background()

	sessionJson, err := json.Marshal(training.Session{
		Type:            "wrestling",
		DurationMinutes: 60,
		Intensity:       5,
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/session", serverEndpoint),
		bytes.NewBuffer(sessionJson),
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}
