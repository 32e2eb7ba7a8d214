package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	auditsvc "github.com/de-tools/audit-atlas/pkg/services/audit"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
)

type mockManager struct {
	mock.Mock
}

func (m *mockManager) CreateAudit(ctx context.Context, req auditsvc.CreateAuditRequest) (*domain.Audit, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *mockManager) GetAudit(ctx context.Context, id string) (*domain.Audit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *mockManager) ListAudits(ctx context.Context, f auditstore.Filters) ([]domain.Audit, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Audit), args.Error(1)
}

func (m *mockManager) StartAudit(ctx context.Context, id string) (*domain.Audit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *mockManager) CompleteAudit(ctx context.Context, id string) (*domain.Audit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *mockManager) SubmitAnswer(
	ctx context.Context,
	auditID string,
	req auditsvc.SubmitAnswerRequest,
) (*domain.Answer, error) {
	args := m.Called(ctx, auditID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

func (m *mockManager) ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).([]domain.Answer), args.Error(1)
}

func (m *mockManager) RecomputeAudit(ctx context.Context, auditID string) (*domain.Progress, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *mockManager) GetQuestions(ctx context.Context, auditID string) ([]domain.SectionQuestions, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).([]domain.SectionQuestions), args.Error(1)
}

func (m *mockManager) GetResults(ctx context.Context, auditID string) (*domain.AuditResults, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditResults), args.Error(1)
}

func (m *mockManager) RegenerateRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *mockManager) ListRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *mockManager) UpdateRecommendationStatus(
	ctx context.Context,
	id string,
	status domain.RecommendationStatus,
) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Statistics(ctx context.Context, organizationID string) (*domain.Statistics, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *mockReporter) Compare(ctx context.Context, auditIDs []string) (*domain.AuditComparison, error) {
	args := m.Called(ctx, auditIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditComparison), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Import(ctx context.Context, definition io.Reader) (*domain.Template, error) {
	args := m.Called(ctx, definition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *mockCatalog) Install(ctx context.Context, t domain.Template) (*domain.Template, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, id string) (*domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.Template, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Template), args.Error(1)
}

func TestNewWebAPI_ShutdownTimeout(t *testing.T) {
	deps := Dependencies{Logger: zerolog.New(zerolog.NewTestWriter(t))}

	api := NewWebAPI(Config{Addr: ":0", ShutdownTimeout: 3 * time.Second, Dependencies: deps})
	assert.Equal(t, 3*time.Second, api.shutdownTimeout)

	api = NewWebAPI(Config{Addr: ":0", Dependencies: deps})
	assert.Equal(t, 10*time.Second, api.shutdownTimeout)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	manager := new(mockManager)
	reporter := new(mockReporter)
	catalog := new(mockCatalog)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Audits:    manager,
			Reporter:  reporter,
			Templates: catalog,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func()
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:   "ListTemplates",
			method: http.MethodGet,
			path:   "/api/v1/templates",
			setupMocks: func() {
				catalog.On("List", mock.Anything).
					Return([]domain.Template{{ID: "t1", Name: "Privacy baseline", Code: "PRIV-BASE", Active: true}}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var templates []api.Template
				require.NoError(t, json.Unmarshal(body, &templates))
				require.Len(t, templates, 1)
				assert.Equal(t, "PRIV-BASE", templates[0].Code)
			},
		},
		{
			name:   "GetTemplate_NotFound",
			method: http.MethodGet,
			path:   "/api/v1/templates/missing",
			setupMocks: func() {
				catalog.On("Get", mock.Anything, "missing").
					Return(nil, domain.ErrTemplateNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "CreateAudit",
			method: http.MethodPost,
			path:   "/api/v1/audits",
			body: `{"name": "Q3 audit", "template_id": "t1", "organization_id": "org1",
				"level_type": "department", "level_id": "dep1"}`,
			setupMocks: func() {
				manager.On("CreateAudit", mock.Anything, mock.MatchedBy(func(req auditsvc.CreateAuditRequest) bool {
					return req.Name == "Q3 audit" && req.Level.Type == domain.LevelDepartment
				})).Return(&domain.Audit{
					ID:     "a1",
					Code:   "AUD-2026-0001",
					Name:   "Q3 audit",
					Status: domain.AuditStatusDraft,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var audit api.Audit
				require.NoError(t, json.Unmarshal(body, &audit))
				assert.Equal(t, "AUD-2026-0001", audit.Code)
				assert.Equal(t, "draft", audit.Status)
			},
		},
		{
			name:           "CreateAudit_MissingFields",
			method:         http.MethodPost,
			path:           "/api/v1/audits",
			body:           `{"name": "no template"}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "CreateAudit_InvalidLevel",
			method: http.MethodPost,
			path:   "/api/v1/audits",
			body: `{"name": "bad level", "template_id": "t1", "organization_id": "org1",
				"level_type": "galaxy"}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "SubmitAnswer",
			method: http.MethodPost,
			path:   "/api/v1/audits/a1/answers",
			body:   `{"question_id": "q1", "answer_boolean": true}`,
			setupMocks: func() {
				manager.On("SubmitAnswer", mock.Anything, "a1", mock.MatchedBy(func(req auditsvc.SubmitAnswerRequest) bool {
					v, ok := req.Value.(domain.BoolValue)
					return req.QuestionID == "q1" && ok && v.Value
				})).Return(&domain.Answer{
					ID:         "ans1",
					AuditID:    "a1",
					QuestionID: "q1",
					Value:      domain.BoolValue{Value: true},
					Score:      10,
					MaxScore:   10,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var answer api.Answer
				require.NoError(t, json.Unmarshal(body, &answer))
				assert.Equal(t, 10.0, answer.Score)
				require.NotNil(t, answer.AnswerBoolean)
				assert.True(t, *answer.AnswerBoolean)
			},
		},
		{
			name:           "SubmitAnswer_TwoValues",
			method:         http.MethodPost,
			path:           "/api/v1/audits/a1/answers",
			body:           `{"question_id": "q1", "answer_boolean": true, "answer_scale": 3}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "CompleteAudit_Conflict",
			method: http.MethodPost,
			path:   "/api/v1/audits/a2/complete",
			setupMocks: func() {
				manager.On("CompleteAudit", mock.Anything, "a2").
					Return(nil, domain.ErrAuditNotCompletable)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "UpdateRecommendationStatus",
			method: http.MethodPatch,
			path:   "/api/v1/recommendations/r1/status",
			body:   `{"status": "completed"}`,
			setupMocks: func() {
				manager.On("UpdateRecommendationStatus", mock.Anything, "r1", domain.RecommendationCompleted).
					Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "GetStatistics_MissingOrganization",
			method:         http.MethodGet,
			path:           "/api/v1/statistics",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "GetStatistics",
			method: http.MethodGet,
			path:   "/api/v1/statistics?organization_id=org1",
			setupMocks: func() {
				reporter.On("Statistics", mock.Anything, "org1").Return(&domain.Statistics{
					TotalAudits:     2,
					CompletedAudits: 1,
					AverageScore:    75.5,
					AuditsByStatus:  map[domain.AuditStatus]int{domain.AuditStatusCompleted: 1, domain.AuditStatusDraft: 1},
					AuditsByLevel:   map[domain.LevelType]int{domain.LevelCompany: 2},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var stats api.Statistics
				require.NoError(t, json.Unmarshal(body, &stats))
				assert.Equal(t, 2, stats.TotalAudits)
				assert.Equal(t, 75.5, stats.AverageScore)
			},
		},
		{
			name:   "CompareAudits_TooFew",
			method: http.MethodGet,
			path:   "/api/v1/comparison?audit_ids=a1",
			setupMocks: func() {
				reporter.On("Compare", mock.Anything, []string{"a1"}).
					Return(nil, domain.ErrInvalidComparison)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var body io.Reader
			if tc.body != "" {
				body = bytes.NewBufferString(tc.body)
			}
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, body)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.check != nil {
				data, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				tc.check(t, data)
			}
		})
	}
}
