package service

import (
	"sync"

	"campus_hub/internal/models"

	"go.uber.org/zap"
)

// EventKind 定義通知中心的事件類型
type EventKind string

const (
	EventMessageCreated  EventKind = "message_created"  // 訊息成功持久化
	EventMention         EventKind = "mention"          // 訊息中的 @提及
	EventReactionAdded   EventKind = "reaction_added"   // 新增回應
	EventReactionChanged EventKind = "reaction_changed" // 回應改為其他類型
)

// Event 是通知中心廣播的事件
// 各字段依事件類型填入：提及事件的 TargetID 是被提及者，
// 回應事件的 TargetID 是貼文擁有者
type Event struct {
	Kind            EventKind
	RoomID          uint
	ActorID         uint            // 觸發事件的身份
	TargetID        uint            // 事件關注的對象
	Message         *models.Message // 訊息相關事件攜帶的訊息
	ReactionType    string
	OldReactionType string // reaction_changed 才有值
}

// Observer 是通知中心的觀察者
// HandleEvent 回傳錯誤只會被記錄，不會影響其他觀察者或觸發事件的操作
type Observer interface {
	Name() string
	HandleEvent(event Event) error
}

// Hub 是同步廣播事件的通知中心
// 觀察者名單的寫入只發生在程式啟動與關閉，平常只有讀取
type Hub struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{logger: logger}
}

// Subscribe 註冊觀察者
func (h *Hub) Subscribe(observer Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, observer)
}

// Unsubscribe 移除觀察者，用名稱比對
func (h *Hub) Unsubscribe(observer Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, o := range h.observers {
		if o.Name() == observer.Name() {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

// Publish 把事件依序交給目前註冊的每一個觀察者
// 每個事件對每個觀察者只送一次；單一觀察者失敗或 panic 不會中斷其餘投遞
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	observers := make([]Observer, len(h.observers))
	copy(observers, h.observers)
	h.mu.RUnlock()

	for _, observer := range observers {
		h.deliver(observer, event)
	}
}

func (h *Hub) deliver(observer Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("observer panic",
				zap.String("observer", observer.Name()),
				zap.String("event", string(event.Kind)),
				zap.Any("panic", r))
		}
	}()

	if err := observer.HandleEvent(event); err != nil {
		h.logger.Warn("observer failed",
			zap.String("observer", observer.Name()),
			zap.String("event", string(event.Kind)),
			zap.Error(err))
	}
}
