package main

import (
	"fmt"
	"log"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/config"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/database"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/logger"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/router"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Development, cfg.Log.Level); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Get().Fatal("init database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Get().Fatal("migrate database", zap.Error(err))
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Get().Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}
