package service

import (
	"testing"

	"campus_hub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardAppendsTransaction(t *testing.T) {
	env := newTestEnv(nil)
	amy := env.addUser("amy", models.RoleStudent)

	env.services.Point.Award(amy.ID, 5, "reaction:like")
	env.services.Point.Award(amy.ID, 3, "reaction:like")

	total, recent, err := env.services.Point.Balance(amy.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Len(t, recent, 2)
}

func TestAwardSkipsIneligibleRole(t *testing.T) {
	env := newTestEnv(nil)
	helper := env.addUser("helper", models.RoleAssistant)

	// 助理角色不參與積分，記錄後略過
	env.services.Point.Award(helper.ID, 5, "reaction:like")

	assert.Empty(t, env.points.byUser(helper.ID))
}

func TestAwardSkipsUnknownUser(t *testing.T) {
	env := newTestEnv(nil)

	assert.NotPanics(t, func() {
		env.services.Point.Award(404, 5, "reaction:like")
	})
	assert.Empty(t, env.points.byUser(404))
}

func TestAwardSwallowsWriteFailure(t *testing.T) {
	env := newTestEnv(nil)
	amy := env.addUser("amy", models.RoleStudent)
	env.points.failCreate = true

	// 寫入失敗只記錄，不回傳錯誤給觸發方
	assert.NotPanics(t, func() {
		env.services.Point.Award(amy.ID, 5, "reaction:like")
	})
}
