package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oysterbuild/backend/internal/shared/logger"
)

func newProjectTestEngine(authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProjectHandler(nil, nil, nil, nil, nil, nil, nil, logger.NewLogger())

	engine := gin.New()
	group := engine.Group("/projects")
	if authed {
		group.Use(setPrincipal(7, "owner@example.com"))
	}
	group.POST("", handler.CreateProject)
	group.GET("/:project_id/overview", handler.GetProjectOverview)
	group.PUT("/:project_id/update", handler.UpdateProject)
	group.DELETE("/:project_id/delete", handler.DeleteProject)
	group.PUT("/:project_id/plan/:plan_id/upgrade", handler.UpgradePlan)
	return engine
}

func TestProjectHandler_CreateProjectRequiresAuth(t *testing.T) {
	engine := newProjectTestEngine(false)

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{"project_data": `{"name":"Site A"}`}, nil)
	req.URL.Path = "/projects"
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectHandler_CreateProjectRequiresPayload(t *testing.T) {
	engine := newProjectTestEngine(true)

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{"other": "x"}, nil)
	req.URL.Path = "/projects"
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "project_data is required")
}

func TestProjectHandler_CreateProjectRejectsMalformedPayload(t *testing.T) {
	engine := newProjectTestEngine(true)

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{"project_data": `{not json`}, nil)
	req.URL.Path = "/projects"
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_CreateProjectRejectsBadDates(t *testing.T) {
	engine := newProjectTestEngine(true)

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{
		"project_data": `{"name":"Site A","project_type":"Residential","plan_id":1,"start_date":"soon"}`,
	}, nil)
	req.URL.Path = "/projects"
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_PathValidation(t *testing.T) {
	engine := newProjectTestEngine(true)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "overview bad id", method: http.MethodGet, path: "/projects/abc/overview"},
		{name: "delete bad id", method: http.MethodDelete, path: "/projects/0/delete"},
		{name: "upgrade bad plan id", method: http.MethodPut, path: "/projects/3/plan/xyz/upgrade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
