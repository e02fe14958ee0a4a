package api

import (
	"net/http"

	"campus_hub/internal/api/handlers"
	"campus_hub/internal/middleware"
	"campus_hub/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room)
	messageHandler := handlers.NewMessageHandler(services.Message)
	reactionHandler := handlers.NewReactionHandler(services.Reaction)
	notificationHandler := handlers.NewNotificationHandler(services.Notification)
	pointHandler := handlers.NewPointHandler(services.Point)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Room)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 聊天室相關
		rooms := authorized.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)   // 獲取房間列表
			rooms.POST("", roomHandler.CreateRoom) // 創建房間
			rooms.GET("/:id", roomHandler.GetRoom) // 獲取房間信息

			// 房間參與
			rooms.POST("/:id/join", roomHandler.JoinRoom)   // 加入房間
			rooms.POST("/:id/leave", roomHandler.LeaveRoom) // 離開房間

			// 房間訊息
			rooms.POST("/:id/messages", messageHandler.CreateMessage) // 發送訊息
			rooms.GET("/:id/messages", messageHandler.ListMessages)   // 列出訊息

			// WebSocket 連接點，接收房間即時事件
			rooms.GET("/:id/ws", wsHandler.HandleWebSocket)
		}

		// 訊息層級操作
		messages := authorized.Group("/messages")
		{
			messages.DELETE("/:id", messageHandler.DeleteMessage)            // 刪除訊息
			messages.PUT("/:id/reaction", reactionHandler.SetReaction)       // 新增或改寫回應
			messages.DELETE("/:id/reaction", reactionHandler.RemoveReaction) // 移除回應
		}

		// 通知
		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// 積分
		authorized.GET("/points", pointHandler.GetPoints)
	}
}
