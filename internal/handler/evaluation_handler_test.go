package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/handler"
	"github.com/keith666666666/APEER/internal/service"
)

type stubEvaluationService struct {
	response  dto.EvaluationSubmissionResponse
	peers     []dto.PeerResponse
	err       error
	calls     int
	lastEmail string
}

func (s *stubEvaluationService) Submit(_ context.Context, email string, _ dto.EvaluationSubmissionRequest) (dto.EvaluationSubmissionResponse, error) {
	s.calls++
	s.lastEmail = email
	if s.err != nil {
		return dto.EvaluationSubmissionResponse{}, s.err
	}
	return s.response, nil
}

func (s *stubEvaluationService) StudentsToEvaluate(_ context.Context, email string) ([]dto.PeerResponse, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.peers, nil
}

func newEvaluationApp(svc service.EvaluationService, email string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/evaluations", func(c *fiber.Ctx) error {
		if email != "" {
			c.Locals("user_email", email)
			c.Locals("user_role", "student")
		}
		return c.Next()
	})
	handler.NewEvaluationHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestEvaluationHandlerSubmitCreated(t *testing.T) {
	svc := &stubEvaluationService{
		response: dto.EvaluationSubmissionResponse{
			ID:      12,
			Message: "Evaluation submitted successfully",
			Analysis: dto.AnalysisResultResponse{
				Tags:            []string{"Positive"},
				SentimentScore:  0.4,
				UsefulnessScore: 62,
			},
		},
	}

	app := newEvaluationApp(svc, "alice@example.com")
	resp := postJSON(t, app, "/api/v1/evaluations", dto.EvaluationSubmissionRequest{
		ActivityID:      1,
		TargetStudentID: 2,
		Comment:         "great collaboration",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Success bool                             `json:"success"`
		Data    dto.EvaluationSubmissionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.EqualValues(t, 12, payload.Data.ID)
	require.Equal(t, "alice@example.com", svc.lastEmail)
	require.Equal(t, 1, svc.calls)
}

func TestEvaluationHandlerDuplicateConflict(t *testing.T) {
	svc := &stubEvaluationService{err: service.ErrAlreadyEvaluated}

	app := newEvaluationApp(svc, "alice@example.com")
	resp := postJSON(t, app, "/api/v1/evaluations", dto.EvaluationSubmissionRequest{ActivityID: 1, TargetStudentID: 2})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestEvaluationHandlerStorageUnavailable(t *testing.T) {
	svc := &stubEvaluationService{err: service.ErrStorageUnavailable}

	app := newEvaluationApp(svc, "alice@example.com")
	resp := postJSON(t, app, "/api/v1/evaluations", dto.EvaluationSubmissionRequest{ActivityID: 1, TargetStudentID: 2})
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestEvaluationHandlerRequiresUserContext(t *testing.T) {
	svc := &stubEvaluationService{}

	app := newEvaluationApp(svc, "")
	resp := postJSON(t, app, "/api/v1/evaluations", dto.EvaluationSubmissionRequest{ActivityID: 1, TargetStudentID: 2})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, 0, svc.calls)
}

func TestEvaluationHandlerPeers(t *testing.T) {
	svc := &stubEvaluationService{peers: []dto.PeerResponse{{ID: 4, Name: "Bob Martinez", Email: "bob@example.com"}}}

	app := newEvaluationApp(svc, "alice@example.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations/peers", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool               `json:"success"`
		Data    []dto.PeerResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
	require.Equal(t, "Bob Martinez", payload.Data[0].Name)
}
