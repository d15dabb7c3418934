package handler

import (
	"FleetOps/internal/middleware/jwt"
	"FleetOps/internal/modules/trend/application/dto/request"
	"FleetOps/internal/modules/trend/application/service"
	"FleetOps/pkg/back"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TrendActionHandler struct {
	svc service.ActionService
}

func NewTrendActionHandler(svc service.ActionService) *TrendActionHandler {
	return &TrendActionHandler{svc: svc}
}

func (h *TrendActionHandler) Ensure(c *gin.Context) {
	var req request.EnsureActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("ensure trend action bind failed", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.EnsureAction(c.Request.Context(), req, jwt.CurrentActor(c))
	back.Result(c, data, err)
}

func (h *TrendActionHandler) SetStatus(c *gin.Context) {
	var req request.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req, jwt.CurrentActor(c))
	back.Result(c, data, err)
}

func (h *TrendActionHandler) ListRecent(c *gin.Context) {
	data, err := h.svc.ListRecentActions(c.Request.Context(), c.Query("asset_type"), c.Query("asset_id"), util.ParseLimit(c.Query("limit")))
	back.Result(c, data, err)
}

func (h *TrendActionHandler) Evaluate(c *gin.Context) {
	var req request.EvaluateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.EvaluateAsset(c.Request.Context(), req, jwt.CurrentActor(c))
	back.Result(c, data, err)
}

func (h *TrendActionHandler) RecordTelemetry(c *gin.Context) {
	var req request.RecordTelemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.RecordTelemetry(c.Request.Context(), req, jwt.CurrentActor(c))
	back.Result(c, data, err)
}
