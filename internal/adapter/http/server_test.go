package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/disaster-response-advisor/internal/adapter/http"
	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockAdvisor struct {
	reports []string
}

func (m *mockAdvisor) Advise(_ context.Context, report string) domain.Advisory {
	m.reports = append(m.reports, report)
	return domain.Advisory{
		Event: domain.DisasterEvent{
			Type:         domain.DisasterFlood,
			LocationName: "Dhaka",
			Severity:     map[string]string{},
		},
		Locations: []domain.CriticalLocation{},
		Response: domain.CoordinatedResponse{
			Text:              "DISASTER RESPONSE PLAN: FLOOD in Dhaka",
			Routes:            []domain.Route{},
			FollowUpQuestions: []string{"How high is the water where you are?"},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(advisor httpadapter.Advisor, readyErr error, rps int) *httpadapter.Server {
	return httpadapter.NewServer(":0", advisor, &mockReadiness{err: readyErr}, rps, discardLogger())
}

func postRespond(srv http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/respond", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockAdvisor{}, nil, 5)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReflectsChecker(t *testing.T) {
	ready := newTestServer(&mockAdvisor{}, nil, 5)
	rec := httptest.NewRecorder()
	ready.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	notReady := newTestServer(&mockAdvisor{}, errors.New("not ready yet"), 5)
	rec = httptest.NewRecorder()
	notReady.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockAdvisor{}, nil, 5)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRespondReturnsAdvisory(t *testing.T) {
	advisor := &mockAdvisor{}
	srv := newTestServer(advisor, nil, 5)

	rec := postRespond(srv, `{"message":"  flood in Dhaka  "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"flood in Dhaka"}, advisor.reports)

	var body struct {
		Event struct {
			Type     string `json:"disaster_type"`
			Location string `json:"location"`
		} `json:"event"`
		Locations []json.RawMessage `json:"critical_locations"`
		Response  struct {
			Text      string   `json:"text"`
			Questions []string `json:"follow_up_questions"`
		} `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "flood", body.Event.Type)
	assert.Equal(t, "Dhaka", body.Event.Location)
	assert.NotNil(t, body.Locations)
	assert.Contains(t, body.Response.Text, "FLOOD in Dhaka")
	assert.Len(t, body.Response.Questions, 1)
}

func TestRespondRejectsBadRequests(t *testing.T) {
	advisor := &mockAdvisor{}
	srv := newTestServer(advisor, nil, 50)

	for name, body := range map[string]string{
		"not json":      `flood`,
		"empty message": `{"message":"   "}`,
		"missing field": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postRespond(srv, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, advisor.reports)
}

func TestRespondRateLimited(t *testing.T) {
	srv := newTestServer(&mockAdvisor{}, nil, 1)

	assert.Equal(t, http.StatusOK, postRespond(srv, `{"message":"fire"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postRespond(srv, `{"message":"fire"}`).Code)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health checks bypass the limiter")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&mockAdvisor{}, nil, 5)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/respond", nil)
	req.Header.Set("Origin", "https://maps.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
