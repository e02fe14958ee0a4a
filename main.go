package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus_hub/internal/api"
	"campus_hub/internal/models"
	"campus_hub/internal/repository"
	"campus_hub/internal/service"
	"campus_hub/internal/storage"
	"campus_hub/internal/utils"
	"campus_hub/pkg/config"
	"campus_hub/pkg/logger"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(gin.Mode() != gin.ReleaseMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Message{},
		&models.MessageMention{},
		&models.Reaction{},
		&models.Notification{},
		&models.PointTransaction{},
	); err != nil {
		zapLogger.Fatal("failed to auto migrate database", zap.Error(err))
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 文字生成協作服務是可選的：沒有金鑰時助理只會回罐頭訊息
	var generator service.ReplyGenerator
	if cfg.Assistant.APIKey != "" {
		g, err := service.NewGenAIGenerator(cfg.Assistant.APIKey, cfg.Assistant.Model)
		if err != nil {
			zapLogger.Warn("text generation disabled", zap.Error(err))
		} else {
			generator = g
		}
	}

	// 初始化 services，觀察者在這裡註冊到通知中心
	services := service.NewServices(repos, cfg, generator, zapLogger)

	// 確保保留的助理身份存在
	if _, err := services.User.EnsureAssistant(cfg.Assistant.Handle); err != nil {
		zapLogger.Fatal("failed to ensure assistant identity", zap.Error(err))
	}

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		zapLogger.Fatal("failed to run server", zap.Error(err))
	}

	// 等待進行中的助理回覆收尾
	services.Assistant.Wait()
}
