package service

import (
	"errors"
	"sync"

	"campus_hub/internal/models"
	"campus_hub/internal/repository"
	"campus_hub/pkg/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 測試用的記憶體 repository，行為比照資料庫實作
// 助理回覆走背景 goroutine，所以全部加鎖

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByHandle(handle string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Handle == handle {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRoomRepo struct {
	mu     sync.Mutex
	rooms  map[uint]*models.Room
	nextID uint
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uint]*models.Room)}
}

func (f *fakeRoomRepo) Create(room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	room.ID = f.nextID
	clone := *room
	f.rooms[room.ID] = &clone
	return nil
}

func (f *fakeRoomRepo) FindByID(id uint) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *room
	return &clone, nil
}

func (f *fakeRoomRepo) FindAll() ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rooms []models.Room
	for _, room := range f.rooms {
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

func (f *fakeRoomRepo) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
	return nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[[2]uint]*models.RoomMember
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[[2]uint]*models.RoomMember)}
}

func (f *fakeMemberRepo) Create(member *models.RoomMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	member.ID = f.nextID
	clone := *member
	f.members[[2]uint{member.RoomID, member.UserID}] = &clone
	return nil
}

func (f *fakeMemberRepo) Find(roomID, userID uint) (*models.RoomMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[[2]uint{roomID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *member
	return &clone, nil
}

func (f *fakeMemberRepo) Delete(roomID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, [2]uint{roomID, userID})
	return nil
}

func (f *fakeMemberRepo) ListByRoom(roomID uint) ([]models.RoomMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var members []models.RoomMember
	for key, member := range f.members {
		if key[0] == roomID {
			members = append(members, *member)
		}
	}
	return members, nil
}

type fakeMessageRepo struct {
	mu         sync.Mutex
	messages   map[uint]*models.Message
	mentions   []models.MessageMention
	nextID     uint
	failCreate bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uint]*models.Message)}
}

func (f *fakeMessageRepo) CreateWithMentions(message *models.Message, mentionUserIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("store unavailable")
	}
	f.nextID++
	message.ID = f.nextID
	clone := *message
	f.messages[message.ID] = &clone
	for _, userID := range mentionUserIDs {
		f.mentions = append(f.mentions, models.MessageMention{MessageID: message.ID, UserID: userID})
	}
	return nil
}

func (f *fakeMessageRepo) FindByID(id uint) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	message, ok := f.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *message
	return &clone, nil
}

func (f *fakeMessageRepo) ListByRoom(roomID uint, limit int, cursor uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var messages []models.Message
	for id := cursor + 1; id <= f.nextID && len(messages) < limit; id++ {
		if message, ok := f.messages[id]; ok && message.RoomID == roomID {
			messages = append(messages, *message)
		}
	}
	return messages, nil
}

func (f *fakeMessageRepo) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, id)
	return nil
}

func (f *fakeMessageRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeReactionRepo struct {
	mu   sync.Mutex
	rows map[[2]uint]*models.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{rows: make(map[[2]uint]*models.Reaction)}
}

func (f *fakeReactionRepo) Set(messageID, userID uint, reactionType string) (repository.SetResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uint{messageID, userID}
	existing, ok := f.rows[key]
	if !ok {
		f.rows[key] = &models.Reaction{MessageID: messageID, UserID: userID, Type: reactionType}
		return repository.SetResult{Action: repository.ReactionActionAdded}, nil
	}
	if existing.Type == reactionType {
		return repository.SetResult{Action: repository.ReactionActionDuplicate, OldType: existing.Type}, nil
	}
	old := existing.Type
	existing.Type = reactionType
	return repository.SetResult{Action: repository.ReactionActionChanged, OldType: old}, nil
}

func (f *fakeReactionRepo) Remove(messageID, userID uint, reactionType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uint{messageID, userID}
	existing, ok := f.rows[key]
	if !ok || existing.Type != reactionType {
		return false, nil
	}
	delete(f.rows, key)
	return true, nil
}

func (f *fakeReactionRepo) Find(messageID, userID uint) (*models.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reaction, ok := f.rows[[2]uint{messageID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *reaction
	return &clone, nil
}

func (f *fakeReactionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	rows []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *notification
	clone.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notifications []models.Notification
	for _, row := range f.rows {
		if row.UserID != userID {
			continue
		}
		if unreadOnly && row.Read {
			continue
		}
		notifications = append(notifications, *row)
	}
	return notifications, nil
}

func (f *fakeNotificationRepo) MarkRead(id, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			row.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) byKind(kind string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notifications []models.Notification
	for _, row := range f.rows {
		if row.Kind == kind {
			notifications = append(notifications, *row)
		}
	}
	return notifications
}

type fakePointRepo struct {
	mu         sync.Mutex
	txs        []models.PointTransaction
	failCreate bool
}

func newFakePointRepo() *fakePointRepo {
	return &fakePointRepo{}
}

func (f *fakePointRepo) Create(tx *models.PointTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("store unavailable")
	}
	tx.ID = uint(len(f.txs) + 1)
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakePointRepo) SumByUser(userID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, tx := range f.txs {
		if tx.UserID == userID {
			total += tx.Delta
		}
	}
	return total, nil
}

func (f *fakePointRepo) ListByUser(userID uint, limit int) ([]models.PointTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var txs []models.PointTransaction
	for _, tx := range f.txs {
		if tx.UserID == userID && len(txs) < limit {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (f *fakePointRepo) byUser(userID uint) []models.PointTransaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var txs []models.PointTransaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	return txs
}

// testEnv 用假 repository 組出完整的 service 圖，走和 main 相同的接線
type testEnv struct {
	users         *fakeUserRepo
	rooms         *fakeRoomRepo
	members       *fakeMemberRepo
	messages      *fakeMessageRepo
	reactions     *fakeReactionRepo
	notifications *fakeNotificationRepo
	points        *fakePointRepo
	services      *Services
}

func newTestEnv(generator ReplyGenerator) *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		rooms:         newFakeRoomRepo(),
		members:       newFakeMemberRepo(),
		messages:      newFakeMessageRepo(),
		reactions:     newFakeReactionRepo(),
		notifications: newFakeNotificationRepo(),
		points:        newFakePointRepo(),
	}
	repos := &repository.Repositories{
		User:         env.users,
		Room:         env.rooms,
		Member:       env.members,
		Message:      env.messages,
		Reaction:     env.reactions,
		Notification: env.notifications,
		Point:        env.points,
	}
	cfg := &config.Config{
		Assistant: config.AssistantConfig{Handle: "helper", TimeoutSeconds: 1},
		Points:    config.PointsConfig{LikeCredit: 5, CreditedType: "like"},
	}
	env.services = NewServices(repos, cfg, generator, zap.NewNop())
	return env
}

func (env *testEnv) addUser(handle string, role models.UserRole) *models.User {
	user := &models.User{Handle: handle, Password: "x", Role: role}
	env.users.Create(user)
	return user
}

func (env *testEnv) addRoomWithMembers(userIDs ...uint) *models.Room {
	room := &models.Room{Name: "課程討論區"}
	env.rooms.Create(room)
	for i, userID := range userIDs {
		role := models.MemberRoleNormal
		if i == 0 {
			role = models.MemberRoleAdmin
		}
		env.members.Create(&models.RoomMember{RoomID: room.ID, UserID: userID, Role: role})
	}
	return room
}

// captureObserver 記錄收到的事件，測試廣播行為用
type captureObserver struct {
	mu     sync.Mutex
	name   string
	events []Event
	err    error
}

func (o *captureObserver) Name() string { return o.name }

func (o *captureObserver) HandleEvent(event Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return o.err
}

func (o *captureObserver) byKind(kind EventKind) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var events []Event
	for _, event := range o.events {
		if event.Kind == kind {
			events = append(events, event)
		}
	}
	return events
}
