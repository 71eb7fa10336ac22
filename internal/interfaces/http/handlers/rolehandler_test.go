package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type mockRoleRepo struct {
	roles []*rbac.Role
	err   error
}

func (m *mockRoleRepo) Create(ctx context.Context, role *rbac.Role) error { return m.err }
func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*rbac.Role, error) {
	return nil, m.err
}
func (m *mockRoleRepo) List(ctx context.Context) ([]*rbac.Role, error) {
	return m.roles, m.err
}

func TestRoleHandler_ListRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &mockRoleRepo{roles: []*rbac.Role{
		{ID: 1, Name: constants.RoleProjectOwner, Description: "Full project control"},
		{ID: 2, Name: constants.RoleReportOfficer, Description: "Files and views reports"},
	}}
	handler := NewRoleHandler(repo, logger.NewLogger())

	engine := gin.New()
	engine.GET("/core/roles", handler.ListRoles)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/core/roles", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []RoleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, constants.RoleProjectOwner, resp.Data[0].Name)
	assert.Equal(t, uint(2), resp.Data[1].ID)
}

func TestRoleHandler_ListRolesError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewRoleHandler(&mockRoleRepo{err: fmt.Errorf("db down")}, logger.NewLogger())

	engine := gin.New()
	engine.GET("/core/roles", handler.ListRoles)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/core/roles", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
