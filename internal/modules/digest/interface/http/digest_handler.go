package handler

import (
	"crypto/subtle"
	"time"

	"FleetOps/internal/middleware/jwt"
	"FleetOps/internal/modules/digest/application/service"
	"FleetOps/pkg/back"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CronSecretHeader = "X-Cron-Secret"

type DigestHandler struct {
	svc        service.DigestService
	cronSecret string
	now        func() time.Time
}

func NewDigestHandler(svc service.DigestService, cronSecret string) *DigestHandler {
	return &DigestHandler{svc: svc, cronSecret: cronSecret, now: time.Now}
}

// Cron 外部调度器每分钟调用一次，没有配置密钥时一律拒绝
func (h *DigestHandler) Cron(c *gin.Context) {
	got := c.GetHeader(CronSecretHeader)
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.cronSecret)) != 1 {
		zlog.Warn("trend digest cron rejected", zap.String("client_ip", c.ClientIP()))
		back.Error(c, xerr.Unauthorized, "invalid cron secret")
		return
	}
	data, err := h.svc.RunCron(c.Request.Context(), h.now())
	back.Result(c, data, err)
}

func (h *DigestHandler) Manual(c *gin.Context) {
	data, err := h.svc.RunManual(c.Request.Context(), h.now(), jwt.CurrentActor(c))
	back.Result(c, data, err)
}

func (h *DigestHandler) Runs(c *gin.Context) {
	data, err := h.svc.ListRuns(c.Request.Context(), util.ParseLimit(c.Query("limit")))
	back.Result(c, data, err)
}
