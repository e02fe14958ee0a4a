package service

import (
	"encoding/json"
	"sync"
	"time"

	"campus_hub/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	UserID   uint            // 用戶 ID
	RoomID   uint            // 房間 ID
	SendChan chan []byte     // 消息發送通道，用於異步傳送消息
}

// wireFrame 是推送給客戶端的事件封包
type wireFrame struct {
	Kind         string          `json:"kind"`
	RoomID       uint            `json:"room_id"`
	Message      *models.Message `json:"message,omitempty"`
	ActorID      uint            `json:"actor_id,omitempty"`
	ReactionType string          `json:"reaction_type,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// inboundFrame 是客戶端送進來的訊息
type inboundFrame struct {
	Content       string `json:"content"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}

// WebSocketManager 管理所有的 WebSocket 連接
// 它同時是通知中心的觀察者：房間事件經由它即時推送給在線的客戶端，
// 客戶端送進來的訊息則交給訊息管線處理，不再原樣轉播
type WebSocketManager struct {
	pipeline   *MessageService
	clients    map[uint]map[*Client]bool // 兩層 map: roomID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
	logger     *zap.Logger
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager(pipeline *MessageService, logger *zap.Logger) *WebSocketManager {
	return &WebSocketManager{
		pipeline: pipeline,
		clients:  make(map[uint]map[*Client]bool),
		logger:   logger,
	}
}

func (s *WebSocketManager) Name() string {
	return "websocket_feed"
}

// HandleEvent 把房間事件推送給該房間所有在線客戶端
// 提及通知是個人層級的，由通知紀錄承載，不走房間即時推送
func (s *WebSocketManager) HandleEvent(event Event) error {
	switch event.Kind {
	case EventMessageCreated, EventReactionAdded, EventReactionChanged:
	default:
		return nil
	}

	frame := wireFrame{
		Kind:         string(event.Kind),
		RoomID:       event.RoomID,
		Message:      event.Message,
		ActorID:      event.ActorID,
		ReactionType: event.ReactionType,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	s.broadcastToRoom(event.RoomID, payload)
	return nil
}

// HandleConnection 處理新的 WebSocket 連接請求，阻塞到連接結束
func (s *WebSocketManager) HandleConnection(conn *websocket.Conn, roomID, userID uint) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		RoomID:   roomID,
		SendChan: make(chan []byte, 256), // 設置緩衝大小為 256 的消息通道
	}

	s.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		s.removeClient(client)
		conn.Close()
	}()

	// 啟動讀寫處理
	go s.writePump(client)
	s.readPump(client)
}

// readPump 持續監聽客戶端送來的訊息並交給訊息管線
func (s *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket unexpected close", zap.Error(err))
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.logger.Warn("websocket message parse error", zap.Error(err))
			continue
		}

		// 走完整管線，驗證與授權失敗只回報給這個客戶端
		if _, err := s.pipeline.CreateMessage(client.RoomID, client.UserID, frame.Content, frame.AttachmentRef); err != nil {
			s.sendError(client, err.Error())
		}
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (s *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *WebSocketManager) sendError(client *Client, msg string) {
	frame := wireFrame{Kind: "error", RoomID: client.RoomID, Error: msg}
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	select {
	case client.SendChan <- payload:
	default:
	}
}

// broadcastToRoom 向房間內的所有客戶端廣播消息
func (s *WebSocketManager) broadcastToRoom(roomID uint, payload []byte) {
	s.clientsMux.RLock()
	clients := s.clients[roomID]
	s.clientsMux.RUnlock()

	for client := range clients {
		select {
		case client.SendChan <- payload:
			// 消息成功加入發送隊列
		default:
			// 客戶端消息隊列已滿，關閉連接
			s.removeClient(client)
			client.Conn.Close()
		}
	}
}

// addClient 安全地添加新的客戶端連接
func (s *WebSocketManager) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if s.clients[client.RoomID] == nil {
		s.clients[client.RoomID] = make(map[*Client]bool)
	}
	s.clients[client.RoomID][client] = true
}

// removeClient 安全地移除客戶端連接
func (s *WebSocketManager) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if clients, ok := s.clients[client.RoomID]; ok {
		delete(clients, client)
		// 如果房間空了，刪除房間
		if len(clients) == 0 {
			delete(s.clients, client.RoomID)
		}
	}
}

// GetRoomClients 獲取指定房間的在線客戶端數量
func (s *WebSocketManager) GetRoomClients(roomID uint) int {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return len(s.clients[roomID])
}
