package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	"FleetOps/internal/modules/trend/application/dto/request"
	"FleetOps/internal/modules/trend/application/dto/respond"
	"FleetOps/internal/modules/trend/domain/action"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/back"
	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastActor userEntity.Actor
	lastID    string
	lastLimit int
	statusErr error
}

func (s *stubService) EnsureAction(ctx context.Context, req request.EnsureActionRequest, actor userEntity.Actor) (*respond.EnsureActionRespond, error) {
	s.lastActor = actor
	return &respond.EnsureActionRespond{Created: true, Action: respond.TrendActionItem{ID: "a-1", AssetID: req.AssetID}}, nil
}

func (s *stubService) SetStatus(ctx context.Context, actionID string, req request.SetStatusRequest, actor userEntity.Actor) (*respond.TrendActionItem, error) {
	s.lastID = actionID
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &respond.TrendActionItem{ID: actionID, Status: req.Status}, nil
}

func (s *stubService) ListRecentActions(ctx context.Context, assetType, assetID string, limit int) ([]respond.TrendActionItem, error) {
	s.lastLimit = limit
	return []respond.TrendActionItem{{ID: "a-2"}}, nil
}

func (s *stubService) EvaluateAsset(ctx context.Context, req request.EvaluateAssetRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error) {
	return &respond.EvaluateRespond{AssetID: req.AssetID}, nil
}

func (s *stubService) RecordTelemetry(ctx context.Context, req request.RecordTelemetryRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error) {
	return &respond.EvaluateRespond{AssetID: req.AssetID}, nil
}

func (s *stubService) IngestTelemetry(ctx context.Context, point *telemetryEntity.TelemetryPoint) (*respond.EvaluateRespond, error) {
	return nil, nil
}

func newRouter(svc *stubService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("uuid", "p-1")
		c.Set("role", role)
		c.Next()
	})
	h := NewTrendActionHandler(svc)
	r.POST("/trend-actions/ensure", h.Ensure)
	r.POST("/trend-actions/:id/status", h.SetStatus)
	r.GET("/trend-actions", h.ListRecent)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) back.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var resp back.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestEnsurePassesActor(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc, userEntity.RoleMechanic)
	resp := do(t, r, http.MethodPost, "/trend-actions/ensure", `{"asset_type":"vehicle","asset_id":"v-1","action_type":"asset_health_decline"}`)
	assert.Equal(t, xerr.OK, resp.Code)
	assert.Equal(t, userEntity.Actor{ID: "p-1", Role: userEntity.RoleMechanic}, svc.lastActor)
}

func TestEnsureRejectsBadBody(t *testing.T) {
	r := newRouter(&stubService{}, userEntity.RoleOwner)
	resp := do(t, r, http.MethodPost, "/trend-actions/ensure", `{"asset_type":"vehicle"}`)
	assert.Equal(t, xerr.BadRequest, resp.Code)
}

func TestSetStatusMapsDomainErrors(t *testing.T) {
	svc := &stubService{statusErr: action.ErrForbidden}
	r := newRouter(svc, userEntity.RoleDriver)
	resp := do(t, r, http.MethodPost, "/trend-actions/a-9/status", `{"status":"resolved"}`)
	assert.Equal(t, xerr.Forbidden, resp.Code)
	assert.Equal(t, "a-9", svc.lastID)
}

func TestListRecentParsesLimit(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc, userEntity.RoleViewer)
	resp := do(t, r, http.MethodGet, "/trend-actions?asset_type=vehicle&asset_id=v-1&limit=5", "")
	assert.Equal(t, xerr.OK, resp.Code)
	assert.Equal(t, 5, svc.lastLimit)
}
