package core

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/robgonnella/btscan/internal/config"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/event"
	"github.com/robgonnella/btscan/internal/sdp"
	"github.com/robgonnella/btscan/internal/service"
	"github.com/robgonnella/btscan/internal/stack"
)

// getSqliteDbConnection creates and returns a sqlite database connection
func getSqliteDbConnection(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&service.ServiceModel{}); err != nil {
		return nil, err
	}

	return db, nil
}

// CreateCapability connects to the system bus and returns the host
// stack capability, detecting the generation unless conf forces one
func CreateCapability(ctx context.Context, conf config.Config) (stack.Capability, error) {
	bus, err := dbus.SystemBus()

	if err != nil {
		return nil, fmt.Errorf("cannot connect to system bus: %w", err)
	}

	conn := stack.NewConn(bus)

	generation, forced := conf.StackGeneration()

	if !forced {
		generation, err = stack.Detect(ctx, conn)

		if err != nil {
			return nil, err
		}
	}

	return stack.New(generation, conn, sdp.NewWorker(sdp.NewDialer()))
}

// CreateHistoryService opens the history database at the runtime
// "database-file" location
func CreateHistoryService() (*service.HistoryService, error) {
	dbFile := viper.Get("database-file").(string)

	db, err := getSqliteDbConnection(dbFile)

	if err != nil {
		return nil, err
	}

	return service.NewHistoryService(service.NewSqliteRepo(db)), nil
}

// CreateNewAppCore creates and returns a new instance of *core.Core
func CreateNewAppCore(ctx context.Context, conf config.Config) (*Core, error) {
	capability, err := CreateCapability(ctx, conf)

	if err != nil {
		return nil, err
	}

	history, err := CreateHistoryService()

	if err != nil {
		return nil, err
	}

	events := event.NewEventManager()

	agent := discovery.NewAgent(capability, events)

	return New(conf, capability, agent, history, events), nil
}
