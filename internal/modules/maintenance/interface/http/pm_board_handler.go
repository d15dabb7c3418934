package handler

import (
	"FleetOps/internal/modules/maintenance/application/dto/request"
	"FleetOps/internal/modules/maintenance/application/service"
	"FleetOps/pkg/back"
	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
)

type PmBoardHandler struct {
	svc service.BoardService
}

func NewPmBoardHandler(svc service.BoardService) *PmBoardHandler {
	return &PmBoardHandler{svc: svc}
}

func (h *PmBoardHandler) Board(c *gin.Context) {
	var q request.BoardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Board(c.Request.Context(), q)
	back.Result(c, data, err)
}
