package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// CannedReply 是產生回覆失敗時的固定替代文案，保證助理一定會回話
const CannedReply = "抱歉，我現在沒辦法好好回答這個問題，請稍後再試一次。"

// ReplyGenerator 是外部文字生成協作服務的介面
type ReplyGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenAIGenerator 透過 Google GenAI 產生回覆
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return result.Text(), nil
}

// AssistantBridge 訂閱訊息建立事件，在內容 @到助理代稱時自動回覆
// 回覆工作在背景 goroutine 進行，Publish 不會等待外部呼叫完成，
// 所以觸發訊息的發送流程永遠不會被助理拖慢或拖垮
type AssistantBridge struct {
	pipeline  *MessageService
	userRepo  repository.UserRepository
	generator ReplyGenerator // 可為 nil，此時只回罐頭訊息
	handle    string
	timeout   time.Duration
	logger    *zap.Logger

	wg sync.WaitGroup
}

func NewAssistantBridge(
	pipeline *MessageService,
	userRepo repository.UserRepository,
	generator ReplyGenerator,
	handle string,
	timeout time.Duration,
	logger *zap.Logger,
) *AssistantBridge {
	return &AssistantBridge{
		pipeline:  pipeline,
		userRepo:  userRepo,
		generator: generator,
		handle:    handle,
		timeout:   timeout,
		logger:    logger,
	}
}

func (b *AssistantBridge) Name() string {
	return "assistant_bridge"
}

func (b *AssistantBridge) HandleEvent(event Event) error {
	if event.Kind != EventMessageCreated || event.Message == nil {
		return nil
	}
	if !b.mentioned(event.Message.Content) {
		return nil
	}

	assistant, err := b.userRepo.FindByHandle(b.handle)
	if err != nil {
		return fmt.Errorf("assistant identity %q not found: %w", b.handle, err)
	}
	// 助理自己發的訊息不觸發回覆，避免自我循環
	if event.Message.UserID == assistant.ID {
		return nil
	}

	message := event.Message
	b.wg.Add(1)
	go b.reply(assistant, message)
	return nil
}

// Wait 等待所有進行中的回覆完成，關機與測試時使用
func (b *AssistantBridge) Wait() {
	b.wg.Wait()
}

// mentioned 用與提及解析相同的規則比對，避免 @helperx 誤觸發 @helper
func (b *AssistantBridge) mentioned(content string) bool {
	for _, handle := range extractHandles(content) {
		if handle == b.handle {
			return true
		}
	}
	return false
}

func (b *AssistantBridge) reply(assistant *models.User, message *models.Message) {
	defer b.wg.Done()

	text := b.generate(message.Content)
	if _, err := b.pipeline.CreateMessage(message.RoomID, assistant.ID, text, ""); err != nil {
		b.logger.Error("assistant reply failed",
			zap.Uint("room_id", message.RoomID),
			zap.Uint("trigger_message_id", message.ID),
			zap.Error(err))
	}
}

// generate 呼叫外部生成服務，失敗或逾時就退回罐頭回覆
func (b *AssistantBridge) generate(content string) string {
	if b.generator == nil {
		return CannedReply
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	prompt := fmt.Sprintf("你是校園協作平台裡的課程助理 @%s，請用繁體中文簡短回覆以下訊息：\n%s", b.handle, content)
	text, err := b.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		b.logger.Warn("text generation unavailable, using canned reply", zap.Error(err))
		return CannedReply
	}
	return text
}
