package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/yashrajoria/restaurant-service/common/logger"
	"github.com/yashrajoria/restaurant-service/config"
	"github.com/yashrajoria/restaurant-service/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadConfig reads --env-file (when given) ahead of the regular config load.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return config.Load()
}

// openDatabase loads config, a console logger and the Postgres connection
// shared by the one-shot commands.
func openDatabase() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.Initialize(cfg.AppEnv)

	db, err := database.ConnectPostgres(cfg.PostgresDSN(), log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 30*time.Second)
}
