package http

import (
	"FleetOps/internal/config"
	"FleetOps/internal/initial"
	jwtMiddleware "FleetOps/internal/middleware/jwt"
	digestService "FleetOps/internal/modules/digest/application/service"
	"FleetOps/internal/modules/digest/domain/repository"
	"FleetOps/internal/modules/digest/infrastructure/email"
	"FleetOps/internal/modules/digest/infrastructure/lock"
	digestPersistence "FleetOps/internal/modules/digest/infrastructure/persistence"
	digestHandler "FleetOps/internal/modules/digest/interface/http"
	maintenanceService "FleetOps/internal/modules/maintenance/application/service"
	maintenanceHandler "FleetOps/internal/modules/maintenance/interface/http"
	telemetryPersistence "FleetOps/internal/modules/telemetry/infrastructure/persistence"
	trendService "FleetOps/internal/modules/trend/application/service"
	trendPersistence "FleetOps/internal/modules/trend/infrastructure/persistence"
	"FleetOps/internal/modules/trend/infrastructure/queue"
	trendHandler "FleetOps/internal/modules/trend/interface/http"
	"FleetOps/internal/modules/user/application/service"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/internal/modules/user/infrastructure/persistence"
	userHandler "FleetOps/internal/modules/user/interface/http"
	"FleetOps/pkg/redis"
	"FleetOps/pkg/ssl"
	"FleetOps/pkg/ws"
	"FleetOps/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	GE *gin.Engine
	// ActionSvc 供 kafka 遥测消费者复用
	ActionSvc trendService.ActionService
	// DigestSvc 供进程内调度器复用
	DigestSvc digestService.DigestService
)

func init() {
	conf := config.GetConfig()

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", digestHandler.CronSecretHeader}
	GE.Use(cors.New(corsConfig))
	if conf.MainConfig.TLS {
		GE.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	wsHub := ws.NewHub()

	profileRepo := persistence.NewProfileRepository(initial.GormDB)
	telemetryRepo := telemetryPersistence.NewTelemetryRepository(initial.GormDB)
	actionRepo := trendPersistence.NewTrendActionRepository(initial.GormDB)
	runRepo := digestPersistence.NewRunRepository(initial.GormDB)
	notifRepo := digestPersistence.NewNotificationRepository(initial.GormDB)

	var cooldownLock repository.CooldownLockRepository
	if conf.DigestConfig.LockBackend == "redis" && redis.IsConnected() {
		cooldownLock = lock.NewRedisCooldownLock()
	} else {
		cooldownLock = digestPersistence.NewCooldownLockRepository(initial.GormDB)
	}

	// 未配置 SMTP 时不发邮件，站内通知照常写入
	var mailer digestService.Mailer
	if conf.EmailConfig.SMTPHost != "" {
		mailer = email.NewSMTPSender(conf.EmailConfig)
	}

	profileSvc := service.NewProfileService(profileRepo)
	ActionSvc = trendService.NewActionService(actionRepo, telemetryRepo, queue.NewActionEventPublisher(initial.KafkaPublisher, conf.KafkaConfig.ActionTopic))
	boardSvc := maintenanceService.NewBoardService(telemetryRepo)
	DigestSvc = digestService.NewDigestService(runRepo, notifRepo, cooldownLock, actionRepo, telemetryRepo, profileRepo, mailer, wsHub, digestService.Options{
		Location:     conf.DigestConfig.Location(),
		TargetHour:   conf.DigestConfig.Hour(),
		Cooldown:     conf.DigestConfig.Cooldown(),
		TopN:         conf.DigestConfig.TopAssets(),
		From:         conf.EmailConfig.From,
		AppURL:       conf.DigestConfig.AppURL,
		EmailWorkers: conf.EmailConfig.Workers(),
		EmailTimeout: conf.EmailConfig.Timeout(),
	})
	notifSvc := digestService.NewNotificationService(notifRepo)

	profileH := userHandler.NewProfileHandler(profileSvc)
	trendH := trendHandler.NewTrendActionHandler(ActionSvc)
	boardH := maintenanceHandler.NewPmBoardHandler(boardSvc)
	digestH := digestHandler.NewDigestHandler(DigestSvc, conf.DigestConfig.CronSecret)
	notifH := digestHandler.NewNotificationHandler(notifSvc)
	wsH := digestHandler.NewWsHandler(wsHub, profileRepo)

	if conf.MainConfig.DevLogin {
		GE.POST("/login", profileH.Login)
	}
	GE.GET("/wss", wsH.Connect)
	// 外部调度器用共享密钥调用，不走 jwt
	GE.POST("/cron/trend-digest", digestH.Cron)

	authed := GE.Group("/")
	authed.Use(jwtMiddleware.Auth())
	authed.GET("/auth/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"uuid": c.GetString("uuid"),
			"role": c.GetString("role"),
		})
	})
	authed.POST("/trend-actions/ensure", trendH.Ensure)
	authed.POST("/trend-actions/:id/status", trendH.SetStatus)
	authed.GET("/trend-actions", trendH.ListRecent)
	authed.POST("/trend-actions/evaluate", trendH.Evaluate)
	authed.POST("/telemetry/points", trendH.RecordTelemetry)
	authed.GET("/pm-board", boardH.Board)
	authed.GET("/notifications", notifH.ListMine)
	authed.POST("/notifications/:id/read", notifH.MarkRead)

	owner := authed.Group("/trend-digest")
	owner.Use(jwtMiddleware.RequireRoles(userEntity.RoleOwner))
	owner.POST("/run", digestH.Manual)
	owner.GET("/runs", digestH.Runs)

	zlog.Info("http routes registered")
}
