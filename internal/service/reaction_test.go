package service

import (
	"testing"

	"campus_hub/internal/errs"
	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 建一個房間、一則 bob 發的訊息，回傳環境與訊息 ID
func reactionFixture(t *testing.T) (*testEnv, *models.User, *models.User, uint) {
	t.Helper()
	env := newTestEnv(nil)
	amy := env.addUser("amy", models.RoleStudent)
	bob := env.addUser("bob", models.RoleStudent)
	room := env.addRoomWithMembers(amy.ID, bob.ID)

	message, err := env.services.Message.CreateMessage(room.ID, bob.ID, "我的貼文", "")
	require.NoError(t, err)
	return env, amy, bob, message.ID
}

func TestSetReactionAddThenDuplicate(t *testing.T) {
	env, amy, _, messageID := reactionFixture(t)

	action, err := env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)
	assert.Equal(t, repository.ReactionActionAdded, action)

	// 重複送出相同類型被拒絕，狀態不變
	_, err = env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	assert.Equal(t, errs.DuplicateReaction, errs.KindOf(err))
	assert.Equal(t, 1, env.reactions.count())
}

func TestSetReactionChangeType(t *testing.T) {
	env, amy, _, messageID := reactionFixture(t)
	capture := &captureObserver{name: "capture"}
	env.services.Hub.Subscribe(capture)

	_, err := env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)

	action, err := env.services.Reaction.SetReaction(messageID, amy.ID, "love")
	require.NoError(t, err)
	assert.Equal(t, repository.ReactionActionChanged, action)

	// 仍然只有一筆紀錄，而且已改為新類型
	assert.Equal(t, 1, env.reactions.count())
	reaction, err := env.reactions.Find(messageID, amy.ID)
	require.NoError(t, err)
	assert.Equal(t, "love", reaction.Type)

	// reaction_changed 事件恰好發出一次，帶新舊類型
	changed := capture.byKind(EventReactionChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, "like", changed[0].OldReactionType)
	assert.Equal(t, "love", changed[0].ReactionType)
}

func TestLikeCreditsPostOwnerOnce(t *testing.T) {
	env, amy, bob, messageID := reactionFixture(t)

	_, err := env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)

	// 貼文擁有者恰好得到一筆設定額度的積分，按讚的人不受影響
	txs := env.points.byUser(bob.ID)
	require.Len(t, txs, 1)
	assert.Equal(t, 5, txs[0].Delta)
	assert.Empty(t, env.points.byUser(amy.ID))

	// 換成別的類型再換回來也不會再加分，改寫不是新增
	_, err = env.services.Reaction.SetReaction(messageID, amy.ID, "love")
	require.NoError(t, err)
	_, err = env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)
	assert.Len(t, env.points.byUser(bob.ID), 1)
}

func TestSelfLikeAwardsNothing(t *testing.T) {
	env, _, bob, messageID := reactionFixture(t)

	action, err := env.services.Reaction.SetReaction(messageID, bob.ID, "like")
	require.NoError(t, err)

	// 回應本身成立，但自己讚自己不加分
	assert.Equal(t, repository.ReactionActionAdded, action)
	assert.Equal(t, 1, env.reactions.count())
	assert.Empty(t, env.points.byUser(bob.ID))
}

func TestNonCreditedTypeAwardsNothing(t *testing.T) {
	env, amy, bob, messageID := reactionFixture(t)

	_, err := env.services.Reaction.SetReaction(messageID, amy.ID, "love")
	require.NoError(t, err)

	assert.Empty(t, env.points.byUser(bob.ID))
}

func TestRemoveReaction(t *testing.T) {
	env, amy, _, messageID := reactionFixture(t)

	_, err := env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)

	// 類型不符是 no-op，不是錯誤
	removed, err := env.services.Reaction.RemoveReaction(messageID, amy.ID, "love")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, env.reactions.count())

	removed, err = env.services.Reaction.RemoveReaction(messageID, amy.ID, "like")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, env.reactions.count())

	// 已經沒有回應，再移除一次仍是 no-op
	removed, err = env.services.Reaction.RemoveReaction(messageID, amy.ID, "like")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSetReactionUnknownMessage(t *testing.T) {
	env := newTestEnv(nil)
	amy := env.addUser("amy", models.RoleStudent)

	_, err := env.services.Reaction.SetReaction(99, amy.ID, "like")
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestReactionNotificationForOwner(t *testing.T) {
	env, amy, bob, messageID := reactionFixture(t)

	_, err := env.services.Reaction.SetReaction(messageID, amy.ID, "like")
	require.NoError(t, err)

	added := env.notifications.byKind(string(EventReactionAdded))
	require.Len(t, added, 1)
	assert.Equal(t, bob.ID, added[0].UserID)

	// 自己的回應不通知自己
	_, err = env.services.Reaction.SetReaction(messageID, bob.ID, "love")
	require.NoError(t, err)
	assert.Len(t, env.notifications.byKind(string(EventReactionAdded)), 1)
}
