// Package membersvc - Service thành viên workspace (members).
package membersvc

import (
	"context"
	"fmt"

	basesvc "slack_deals/internal/api/base/service"
	membermodels "slack_deals/internal/api/member/models"
	"slack_deals/internal/common"
	"slack_deals/internal/global"
	"slack_deals/internal/slack"
	"slack_deals/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// MemberService xử lý CRUD member và đồng bộ từ Slack.
type MemberService struct {
	*basesvc.BaseServiceMongoImpl[membermodels.Member]
}

// NewMemberService tạo MemberService mới.
func NewMemberService() (*MemberService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Members)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Members, common.ErrNotFound)
	}
	return &MemberService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[membermodels.Member](coll),
	}, nil
}

// ListByWorkspace trả về member của workspace, sort theo displayName tăng dần.
func (s *MemberService) ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]membermodels.Member, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "displayName", Value: 1}})
	return s.Find(ctx, bson.M{"workspaceId": workspaceID}, opts)
}

// FindDefaultMembers trả về member được tự động mời vào channel mới
// (isDefaultMember && isActive).
func (s *MemberService) FindDefaultMembers(ctx context.Context, workspaceID primitive.ObjectID) ([]membermodels.Member, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "displayName", Value: 1}})
	return s.Find(ctx, bson.M{
		"workspaceId":     workspaceID,
		"isDefaultMember": true,
		"isActive":        true,
	}, opts)
}

// FindBySlackUserIds trả về member của workspace có slackUserId nằm trong danh sách.
func (s *MemberService) FindBySlackUserIds(ctx context.Context, workspaceID primitive.ObjectID, slackUserIds []string) ([]membermodels.Member, error) {
	if len(slackUserIds) == 0 {
		return []membermodels.Member{}, nil
	}
	return s.Find(ctx, bson.M{
		"workspaceId": workspaceID,
		"slackUserId": bson.M{"$in": slackUserIds},
	}, nil)
}

// SyncFromSlack upsert danh sách user lấy từ Slack users.list vào members.
// User đã có thì cập nhật profile và isActive, user mới thì tạo với cờ mặc định tắt.
// Trả về số member được xử lý.
func (s *MemberService) SyncFromSlack(ctx context.Context, workspaceID primitive.ObjectID, users []slack.User) (int, error) {
	synced := 0
	for _, u := range users {
		displayName := u.Profile.DisplayName
		if displayName == "" {
			displayName = u.Profile.RealName
		}
		update := &basesvc.UpdateData{
			Set: map[string]interface{}{
				"email":       u.Profile.Email,
				"displayName": displayName,
				"realName":    u.Profile.RealName,
				"isActive":    !u.Deleted,
			},
			SetOnInsert: map[string]interface{}{
				"workspaceId":     workspaceID,
				"slackUserId":     u.ID,
				"isDefaultMember": false,
			},
		}
		filter := bson.M{"workspaceId": workspaceID, "slackUserId": u.ID}
		if _, err := s.Upsert(ctx, filter, update); err != nil {
			return synced, fmt.Errorf("sync member %s: %w", u.ID, err)
		}
		synced++
	}
	return synced, nil
}

// SetDefaultFlag bật/tắt cờ default member cho 1 member.
func (s *MemberService) SetDefaultFlag(ctx context.Context, memberID primitive.ObjectID, isDefault bool) (membermodels.Member, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"isDefaultMember": isDefault},
	}
	return s.UpdateById(ctx, memberID, update)
}

// BulkSetDefaultFlag bật/tắt cờ default member cho nhiều member của workspace.
// Trả về danh sách member sau khi cập nhật.
func (s *MemberService) BulkSetDefaultFlag(ctx context.Context, workspaceID primitive.ObjectID, memberIds []string, isDefault bool) ([]membermodels.Member, error) {
	ids := utility.StringArray2ObjectIDArray(memberIds)
	if len(ids) == 0 {
		return []membermodels.Member{}, nil
	}
	filter := bson.M{
		"_id":         bson.M{"$in": ids},
		"workspaceId": workspaceID,
	}
	update := bson.M{"$set": bson.M{"isDefaultMember": isDefault}}
	if _, err := s.UpdateMany(ctx, filter, update, nil); err != nil {
		return nil, err
	}
	return s.Find(ctx, filter, nil)
}
