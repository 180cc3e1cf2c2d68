package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/handler"
	"github.com/keith666666666/APEER/internal/service"
)

type stubStudentService struct {
	dashboard dto.StudentDashboardResponse
	history   []dto.FeedbackHistoryResponse
	report    []byte
	err       error
	lastEmail string
}

func (s *stubStudentService) Dashboard(_ context.Context, email string) (dto.StudentDashboardResponse, error) {
	s.lastEmail = email
	if s.err != nil {
		return dto.StudentDashboardResponse{}, s.err
	}
	return s.dashboard, nil
}

func (s *stubStudentService) FeedbackHistory(_ context.Context, email string) ([]dto.FeedbackHistoryResponse, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubStudentService) PersonalReport(_ context.Context, email string) ([]byte, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newStudentApp(svc service.StudentService, email string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/student", func(c *fiber.Ctx) error {
		if email != "" {
			c.Locals("user_email", email)
			c.Locals("user_role", "student")
		}
		return c.Next()
	})
	handler.NewStudentHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestStudentHandlerDashboard(t *testing.T) {
	svc := &stubStudentService{
		dashboard: dto.StudentDashboardResponse{
			Name:              "Alice Chen",
			OverallScore:      70,
			ParticipationRate: 40,
		},
	}

	app := newStudentApp(svc, "alice@example.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                         `json:"success"`
		Data    dto.StudentDashboardResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, 70, payload.Data.OverallScore)
	require.Equal(t, "alice@example.com", svc.lastEmail)
}

func TestStudentHandlerDashboardNotFound(t *testing.T) {
	svc := &stubStudentService{err: service.ErrUserNotFound}

	app := newStudentApp(svc, "ghost@example.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStudentHandlerFeedbackHistory(t *testing.T) {
	svc := &stubStudentService{
		history: []dto.FeedbackHistoryResponse{
			{ID: 1, EvaluatorName: "Anonymous Peer", SentimentLabel: "Positive"},
		},
	}

	app := newStudentApp(svc, "alice@example.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/feedback", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                          `json:"success"`
		Data    []dto.FeedbackHistoryResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Len(t, payload.Data, 1)
	require.Equal(t, "Anonymous Peer", payload.Data[0].EvaluatorName)
}

func TestStudentHandlerReportDownload(t *testing.T) {
	svc := &stubStudentService{report: []byte("APEER - Personal Performance Report\nOverall Score: 70%")}

	app := newStudentApp(svc, "alice@example.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/report", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/plain"))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "performance-report.txt")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, string(body), "Personal Performance Report")
}

func TestStudentHandlerRequiresUserContext(t *testing.T) {
	svc := &stubStudentService{}

	app := newStudentApp(svc, "")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
