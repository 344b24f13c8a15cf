package provision

import (
	"context"

	"slack_deals/internal/logger"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipResolver tính tập Slack user id cần mời vào channel mới:
// default members của workspace (isDefaultMember && isActive) hợp với danh sách
// caller truyền lên, khử trùng lặp. Default members luôn đọc từ store — request
// không thể tắt default invitees.
type MembershipResolver struct {
	repo Repository
}

// NewMembershipResolver tạo MembershipResolver mới.
func NewMembershipResolver(repo Repository) *MembershipResolver {
	return &MembershipResolver{repo: repo}
}

// ResolveMembers trả về tập user id đã khử trùng lặp, thứ tự không đảm bảo.
func (r *MembershipResolver) ResolveMembers(ctx context.Context, workspaceID primitive.ObjectID, explicitIDs []string) ([]string, error) {
	defaults, err := r.repo.FindDefaultMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(defaults)+len(explicitIDs))
	for _, m := range defaults {
		ids = append(ids, m.SlackUserId)
	}
	ids = append(ids, explicitIDs...)

	union := lo.Uniq(lo.Filter(ids, func(id string, _ int) bool { return id != "" }))
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"workspaceId": workspaceID.Hex(),
		"defaults":    len(defaults),
		"explicit":    len(explicitIDs),
		"resolved":    len(union),
	}).Debug("👥 [PROVISION] Resolve member set")
	return union, nil
}
