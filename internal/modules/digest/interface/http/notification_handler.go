package handler

import (
	"FleetOps/internal/middleware/jwt"
	"FleetOps/internal/modules/digest/application/service"
	"FleetOps/pkg/back"
	"FleetOps/pkg/util"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	actor := jwt.CurrentActor(c)
	unread := c.Query("unread") == "true" || c.Query("unread") == "1"
	data, err := h.svc.ListMine(c.Request.Context(), actor.ID, unread, util.ParseLimit(c.Query("limit")))
	back.Result(c, data, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := jwt.CurrentActor(c)
	err := h.svc.MarkRead(c.Request.Context(), actor.ID, c.Param("id"))
	back.Result(c, nil, err)
}
