package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"FleetOps/internal/config"
	digestEntity "FleetOps/internal/modules/digest/domain/digest"
	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	"FleetOps/internal/modules/trend/domain/action"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/zlog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func init() {
	conf := config.GetConfig()
	dbName := conf.MysqlConfig.DatabaseName
	if dbName == "" {
		dbName = conf.AppName
	}
	// loc=UTC：所有时间按 UTC 落库，业务时区只在摘要计算时使用
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		conf.MysqlConfig.User, conf.MysqlConfig.Password, conf.MysqlConfig.Host, conf.MysqlConfig.Port, dbName)
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	var err error
	// TranslateError 让唯一索引冲突变成 gorm.ErrDuplicatedKey
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		zlog.Fatal(err.Error())
	}
	// 自动迁移，如果没有建表，会自动创建对应的表
	err = GormDB.AutoMigrate(
		&userEntity.Profile{},
		&telemetryEntity.Vehicle{},
		&telemetryEntity.Equipment{},
		&telemetryEntity.TelemetryPoint{},
		&telemetryEntity.ServiceEvent{},
		&action.TrendAction{},
		&digestEntity.DigestRun{},
		&digestEntity.Notification{},
		&digestEntity.CooldownLock{},
	)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}
