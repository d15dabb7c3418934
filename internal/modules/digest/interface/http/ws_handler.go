package handler

import (
	"net/http"

	userRepository "FleetOps/internal/modules/user/domain/repository"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/ws"
	"FleetOps/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WsHandler struct {
	hub      *ws.Hub
	profiles userRepository.ProfileRepository
}

func NewWsHandler(hub *ws.Hub, profiles userRepository.ProfileRepository) *WsHandler {
	return &WsHandler{hub: hub, profiles: profiles}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect 浏览器原生 WebSocket 不能带 Header，token 放在 query 里，这里手动校验
func (h *WsHandler) Connect(c *gin.Context) {
	claims, err := myjwt.ParseToken(c.Query("token"))
	if err != nil || claims == nil || claims.Uuid == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	// token 有效但 profile 已删除的不允许连接
	if p, err := h.profiles.GetByID(c.Request.Context(), claims.Uuid); err != nil || p == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Error("ws upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(claims.Uuid, conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go client.WritePump()
	client.ReadPump()
}
