package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"keystone-server/internal/handler"
	"keystone-server/internal/repository"
	"keystone-server/internal/service"
	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// APITestSuite drives the full route table against a fresh in-memory
// store per test.
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	storage := repository.NewMemoryStorage(constants.DefaultDemoUserID, logger)
	apiHandler := handler.NewAPIHandler(
		service.NewStoryService(storage, logger),
		service.NewProgressService(storage, logger),
		service.NewCharacterService(storage, logger),
		service.NewUserService(storage, logger),
		logger,
	)

	s.router = gin.New()
	apiHandler.RegisterRoutes(s.router, nil)
}

func (s *APITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) TestGetCurrentStory() {
	rec := s.request(http.MethodGet, "/api/stories/current", nil)
	s.Equal(http.StatusOK, rec.Code)

	var detail models.StoryDetail
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &detail))
	s.Equal(constants.SeedStoryID, detail.ID)
	s.Require().Len(detail.Choices, 3)
	s.Equal(45, detail.Choices[1].Percentage)

	// Idempotent read: a second request returns byte-identical JSON.
	again := s.request(http.MethodGet, "/api/stories/current", nil)
	s.Equal(rec.Body.String(), again.Body.String())
}

func (s *APITestSuite) TestGetProgress_DemoAutoCreated() {
	rec := s.request(http.MethodGet, fmt.Sprintf("/api/users/%s/progress", constants.DefaultDemoUserID), nil)
	s.Equal(http.StatusOK, rec.Code)

	var progress models.UserProgress
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &progress))
	s.Equal(3, progress.CurrentChapter)
	s.Equal(0, progress.TotalChoices)
}

func (s *APITestSuite) TestGetProgress_UnknownUser404() {
	rec := s.request(http.MethodGet, "/api/users/nobody/progress", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestUpsertProgress() {
	rec := s.request(http.MethodPost, "/api/users/porter-1/progress", map[string]interface{}{
		"currentChapter": 4,
		"trustNetwork":   12,
	})
	s.Equal(http.StatusOK, rec.Code)

	var progress models.UserProgress
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &progress))
	s.Equal(4, progress.CurrentChapter)
	s.Equal(12, progress.TrustNetwork)

	// Partial patch preserves prior fields.
	rec = s.request(http.MethodPost, "/api/users/porter-1/progress", map[string]interface{}{
		"crewLoyalty": -5,
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &progress))
	s.Equal(-5, progress.CrewLoyalty)
	s.Equal(4, progress.CurrentChapter)
}

func (s *APITestSuite) TestUpsertProgress_MalformedBody400() {
	rec := s.request(http.MethodPost, "/api/users/porter-1/progress", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSubmitChoice() {
	rec := s.request(http.MethodPost, "/api/choices", map[string]string{
		"userId":   constants.DefaultDemoUserID,
		"choiceId": "choice-2",
		"storyId":  constants.SeedStoryID,
	})
	s.Equal(http.StatusCreated, rec.Code)

	var userChoice models.UserChoice
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &userChoice))
	s.NotEmpty(userChoice.ID)
	s.Equal("choice-2", userChoice.ChoiceID)

	// The submission accumulated choice-2's deltas.
	progRec := s.request(http.MethodGet, fmt.Sprintf("/api/users/%s/progress", constants.DefaultDemoUserID), nil)
	var progress models.UserProgress
	s.Require().NoError(json.Unmarshal(progRec.Body.Bytes(), &progress))
	s.Equal(25, progress.TrustNetwork)
	s.Equal(10, progress.CouncilStanding)
	s.Equal(15, progress.CrewLoyalty)
	s.Equal(1, progress.TotalChoices)

	// And was logged.
	logRec := s.request(http.MethodGet, fmt.Sprintf("/api/users/%s/choices/%s", constants.DefaultDemoUserID, constants.SeedStoryID), nil)
	s.Equal(http.StatusOK, logRec.Code)
	var log []models.UserChoice
	s.Require().NoError(json.Unmarshal(logRec.Body.Bytes(), &log))
	s.Len(log, 1)
}

func (s *APITestSuite) TestSubmitChoice_MissingFields400() {
	rec := s.request(http.MethodPost, "/api/choices", map[string]string{
		"userId": constants.DefaultDemoUserID,
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSubmitChoice_UnknownChoice404() {
	rec := s.request(http.MethodPost, "/api/choices", map[string]string{
		"userId":   constants.DefaultDemoUserID,
		"choiceId": "choice-404",
		"storyId":  constants.SeedStoryID,
	})
	s.Equal(http.StatusNotFound, rec.Code)

	// Progress stays untouched.
	progRec := s.request(http.MethodGet, fmt.Sprintf("/api/users/%s/progress", constants.DefaultDemoUserID), nil)
	var progress models.UserProgress
	s.Require().NoError(json.Unmarshal(progRec.Body.Bytes(), &progress))
	s.Equal(0, progress.TotalChoices)
}

func (s *APITestSuite) TestCharacters() {
	rec := s.request(http.MethodGet, "/api/characters", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("no-store", rec.Header().Get("Cache-Control"))

	var characters []models.Character
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &characters))
	s.Require().Len(characters, 4)

	one := s.request(http.MethodGet, "/api/characters/"+characters[0].ID, nil)
	s.Equal(http.StatusOK, one.Code)
	s.Equal("no-store", one.Header().Get("Cache-Control"))

	missing := s.request(http.MethodGet, "/api/characters/char-404", nil)
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *APITestSuite) TestUserStoryChoices_EmptyArray() {
	rec := s.request(http.MethodGet, fmt.Sprintf("/api/users/porter-2/choices/%s", constants.SeedStoryID), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())
}

func (s *APITestSuite) TestRegister() {
	rec := s.request(http.MethodPost, "/api/users", map[string]string{
		"username": "porter-3",
		"password": "keystone1",
	})
	s.Equal(http.StatusCreated, rec.Code)

	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.NotEmpty(created.ID)
	s.Equal("porter-3", created.Username)

	// Registration provisions progress immediately.
	progRec := s.request(http.MethodGet, fmt.Sprintf("/api/users/%s/progress", created.ID), nil)
	s.Equal(http.StatusOK, progRec.Code)

	dup := s.request(http.MethodPost, "/api/users", map[string]string{
		"username": "porter-3",
		"password": "other",
	})
	s.Equal(http.StatusConflict, dup.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
