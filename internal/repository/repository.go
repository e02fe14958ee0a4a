package repository

import "campus_hub/internal/storage"

type Repositories struct {
	User         UserRepository
	Room         RoomRepository
	Member       RoomMemberRepository
	Message      MessageRepository
	Reaction     ReactionRepository
	Notification NotificationRepository
	Point        PointRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Room:         NewRoomRepository(db),
		Member:       NewRoomMemberRepository(db),
		Message:      NewMessageRepository(db),
		Reaction:     NewReactionRepository(db),
		Notification: NewNotificationRepository(db),
		Point:        NewPointRepository(db),
	}
}
