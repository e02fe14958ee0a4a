package service

import (
	"regexp"

	"campus_hub/internal/models"
	"campus_hub/internal/repository"
)

// mentionPattern 匹配 @ 後接帳號代稱字元的片段
var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// extractHandles 取出內容中所有候選代稱，大小寫敏感去重，保留出現順序
func extractHandles(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		handles = append(handles, m[1])
	}
	return handles
}

// MentionResolver 把訊息內容中的 @提及解析成實際身份
type MentionResolver struct {
	userRepo repository.UserRepository
}

func NewMentionResolver(userRepo repository.UserRepository) *MentionResolver {
	return &MentionResolver{userRepo: userRepo}
}

// Resolve 解析內容中的提及
// 每個候選代稱只查詢一次，查不到的直接略過不報錯，發送者自己也會被排除
func (r *MentionResolver) Resolve(content string, senderID uint) []models.User {
	var resolved []models.User
	for _, handle := range extractHandles(content) {
		user, err := r.userRepo.FindByHandle(handle)
		if err != nil {
			continue
		}
		if user.ID == senderID {
			continue
		}
		resolved = append(resolved, *user)
	}
	return resolved
}
