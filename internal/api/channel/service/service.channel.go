// Package channelsvc - Service channel (channels) và liên kết channel_members.
package channelsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "slack_deals/internal/api/base/service"
	channelmodels "slack_deals/internal/api/channel/models"
	membermodels "slack_deals/internal/api/member/models"
	membersvc "slack_deals/internal/api/member/service"
	"slack_deals/internal/common"
	"slack_deals/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ChannelMemberInfo member rút gọn trả về khi expand channel.
type ChannelMemberInfo struct {
	ID          primitive.ObjectID `json:"id"`
	SlackUserId string             `json:"slackUserId"`
	DisplayName string             `json:"displayName,omitempty"`
}

// ChannelWithMembers channel kèm danh sách member đã liên kết.
type ChannelWithMembers struct {
	channelmodels.Channel `bson:",inline"`
	Members               []ChannelMemberInfo `json:"members"`
}

// ChannelService xử lý CRUD channel và liên kết member.
type ChannelService struct {
	*basesvc.BaseServiceMongoImpl[channelmodels.Channel]
	memberColl *basesvc.BaseServiceMongoImpl[channelmodels.ChannelMember]
	memberSvc  *membersvc.MemberService
}

// NewChannelService tạo ChannelService mới.
func NewChannelService() (*ChannelService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Channels)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Channels, common.ErrNotFound)
	}
	linkColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ChannelMembers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ChannelMembers, common.ErrNotFound)
	}
	memberService, err := membersvc.NewMemberService()
	if err != nil {
		return nil, err
	}
	return &ChannelService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[channelmodels.Channel](coll),
		memberColl:           basesvc.NewBaseServiceMongo[channelmodels.ChannelMember](linkColl),
		memberSvc:            memberService,
	}, nil
}

// CreateRecord tạo channel record mới lúc provision.
func (s *ChannelService) CreateRecord(ctx context.Context, channel channelmodels.Channel) (channelmodels.Channel, error) {
	now := time.Now().UnixMilli()
	channel.CreatedAt = now
	channel.UpdatedAt = now
	return s.InsertOne(ctx, channel)
}

// AssociateMembers tạo liên kết channel ↔ member. Upsert theo (channelId, memberId)
// nên gọi lại với member đã liên kết không tạo bản ghi trùng.
func (s *ChannelService) AssociateMembers(ctx context.Context, channelID primitive.ObjectID, members []membermodels.Member) error {
	for _, m := range members {
		filter := bson.M{"channelId": channelID, "memberId": m.ID}
		update := &basesvc.UpdateData{
			SetOnInsert: map[string]interface{}{
				"channelId": channelID,
				"memberId":  m.ID,
			},
		}
		if _, err := s.memberColl.Upsert(ctx, filter, update); err != nil {
			return fmt.Errorf("liên kết member %s với channel %s: %w", m.ID.Hex(), channelID.Hex(), err)
		}
	}
	return nil
}

// ListByWorkspace trả về channel của workspace, mới nhất trước, kèm members.
func (s *ChannelService) ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]ChannelWithMembers, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	channels, err := s.Find(ctx, bson.M{"workspaceId": workspaceID}, opts)
	if err != nil {
		return nil, err
	}

	result := make([]ChannelWithMembers, 0, len(channels))
	for _, ch := range channels {
		members, err := s.findChannelMembers(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ChannelWithMembers{Channel: ch, Members: members})
	}
	return result, nil
}

// findChannelMembers expand danh sách member của 1 channel qua channel_members.
func (s *ChannelService) findChannelMembers(ctx context.Context, channelID primitive.ObjectID) ([]ChannelMemberInfo, error) {
	links, err := s.memberColl.Find(ctx, bson.M{"channelId": channelID}, nil)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []ChannelMemberInfo{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.MemberID)
	}
	members, err := s.memberSvc.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	infos := make([]ChannelMemberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, ChannelMemberInfo{
			ID:          m.ID,
			SlackUserId: m.SlackUserId,
			DisplayName: m.DisplayName,
		})
	}
	return infos, nil
}

// MarkArchived đánh dấu channel đã archive (mutation duy nhất sau khi tạo).
func (s *ChannelService) MarkArchived(ctx context.Context, channelID primitive.ObjectID) (channelmodels.Channel, error) {
	update := &basesvc.UpdateData{Set: map[string]interface{}{"isArchived": true}}
	return s.UpdateById(ctx, channelID, update)
}

// CountCreatedSince đếm số channel của workspace tạo từ thời điểm since (Unix ms).
// Dùng cho giới hạn maxChannelsPerDay.
func (s *ChannelService) CountCreatedSince(ctx context.Context, workspaceID primitive.ObjectID, since int64) (int64, error) {
	return s.CountDocuments(ctx, bson.M{
		"workspaceId": workspaceID,
		"createdAt":   bson.M{"$gte": since},
	})
}

// FindOlderActive trả về channel chưa archive có createdAt < before (cho auto-archive worker).
func (s *ChannelService) FindOlderActive(ctx context.Context, workspaceID primitive.ObjectID, before int64) ([]channelmodels.Channel, error) {
	return s.Find(ctx, bson.M{
		"workspaceId": workspaceID,
		"isArchived":  false,
		"createdAt":   bson.M{"$lt": before},
	}, nil)
}
