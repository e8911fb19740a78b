package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rolltrack/rolltrack/internal/gyms"
	"github.com/rolltrack/rolltrack/internal/training"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) addGym(ctx context.Context, gym gyms.Gym) gyms.Gym {
	gymJson, err := json.Marshal(gym)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/gyms", serverEndpoint),
		bytes.NewBuffer(gymJson),
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

	var addedGym gyms.Gym
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedGym))
	return addedGym
}

func (s *IntegrationTestSuite) TestGyms_AddListUpdateDelete() {
	ctx := context.Background()

	gymName := gofakeit.Company()
	addedGym := s.addGym(ctx, gyms.Gym{
		Name:        gymName,
		City:        gofakeit.City(),
		Country:     gofakeit.Country(),
		Affiliation: "Checkmat",
	})
	require.NotZero(s.T(), addedGym.ID)
	assert.Equal(s.T(), gymName, addedGym.Name)

	// it shows up in the list
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/gyms", serverEndpoint), nil)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var listResp gyms.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))
	var found bool
	for _, g := range listResp.Gyms {
		if g.ID == addedGym.ID {
			found = true
			break
		}
	}
	assert.True(s.T(), found)

	// rename it
	addedGym.Name = gymName + " HQ"
	updatedJson, err := json.Marshal(addedGym)
	require.NoError(s.T(), err)

	req, err = http.NewRequestWithContext(
		ctx,
		"PUT", fmt.Sprintf("%s/gyms", serverEndpoint),
		bytes.NewBuffer(updatedJson),
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	var updateResp gyms.UpdateGymResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &updateResp))
	assert.Equal(s.T(), addedGym.ID, updateResp.UpdatedID)

	// get reflects the rename
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/gyms/%d", serverEndpoint, addedGym.ID),
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

	var gotGym gyms.Gym
	require.NoError(s.T(), json.Unmarshal(respBytes, &gotGym))
	assert.Equal(s.T(), gymName+" HQ", gotGym.Name)

	// and remove it
	req, err = http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/gyms/%d", serverEndpoint, addedGym.ID),
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

	var deleteResp gyms.DeleteGymResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(s.T(), addedGym.ID, deleteResp.DeletedID)
}

func (s *IntegrationTestSuite) TestGyms_DuplicateName() {
	ctx := context.Background()

	gym := gyms.Gym{
		Name: gofakeit.Company(),
		City: gofakeit.City(),
	}
	s.addGym(ctx, gym)

	gymJson, err := json.Marshal(gym)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/gyms", serverEndpoint),
		bytes.NewBuffer(gymJson),
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestGyms_DeleteWithSessionsAttached() {
	ctx := context.Background()

	addedGym := s.addGym(ctx, gyms.Gym{
		Name: gofakeit.Company(),
		City: gofakeit.City(),
	})

	s.addSession(ctx, training.Session{
		GymID:           &addedGym.ID,
		Type:            training.ClassTypeGi,
		DurationMinutes: 60,
		Intensity:       6,
		HappenedAt:      time.Now().Add(-time.Hour),
	})

	req, err := http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/gyms/%d", serverEndpoint, addedGym.ID),
		nil,
	)
	require.NoError(s.T(), err)
	setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)
}
