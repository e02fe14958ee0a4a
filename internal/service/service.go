package service

import (
	"time"

	"campus_hub/internal/repository"
	"campus_hub/pkg/config"

	"go.uber.org/zap"
)

type Services struct {
	User         *UserService
	Room         *RoomService
	Message      *MessageService
	Reaction     *ReactionService
	Point        *PointService
	Notification *NotificationService
	Hub          *Hub
	WebSocket    *WebSocketManager
	Assistant    *AssistantBridge
}

// NewServices 建立所有 service 並接上通知中心
// 觀察者在這裡一次註冊完成，之後只有 Publish 讀取名單
func NewServices(repos *repository.Repositories, cfg *config.Config, generator ReplyGenerator, logger *zap.Logger) *Services {
	hub := NewHub(logger)
	resolver := NewMentionResolver(repos.User)

	userService := NewUserService(repos.User)
	roomService := NewRoomService(repos.Room, repos.Member)
	pointService := NewPointService(repos.Point, repos.User, logger)
	messageService := NewMessageService(repos.Message, repos.Member, repos.Room, repos.User, resolver, hub, logger)
	reactionService := NewReactionService(repos.Reaction, repos.Message, pointService, hub, logger,
		cfg.Points.CreditedType, cfg.Points.LikeCredit)
	notificationService := NewNotificationService(repos.Notification)

	wsManager := NewWebSocketManager(messageService, logger)
	assistant := NewAssistantBridge(messageService, repos.User, generator,
		cfg.Assistant.Handle, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second, logger)

	hub.Subscribe(NewNotificationObserver(repos.Notification, logger))
	hub.Subscribe(wsManager)
	hub.Subscribe(assistant)

	return &Services{
		User:         userService,
		Room:         roomService,
		Message:      messageService,
		Reaction:     reactionService,
		Point:        pointService,
		Notification: notificationService,
		Hub:          hub,
		WebSocket:    wsManager,
		Assistant:    assistant,
	}
}
