// Package provision - Orchestrate pipeline tạo deal channel: resolve tên,
// tạo channel trên Slack (collision-safe), persist record, mời member,
// đặt topic và đăng tin nhắn chào.
package provision

import (
	"context"

	channelmodels "slack_deals/internal/api/channel/models"
	channelsvc "slack_deals/internal/api/channel/service"
	membermodels "slack_deals/internal/api/member/models"
	membersvc "slack_deals/internal/api/member/service"
	templatemodels "slack_deals/internal/api/template/models"
	templatesvc "slack_deals/internal/api/template/service"
	wsmodels "slack_deals/internal/api/workspace/models"
	workspacesvc "slack_deals/internal/api/workspace/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateFilter điều kiện tìm template trong pipeline.
type TemplateFilter struct {
	ID          *primitive.ObjectID // Tìm theo id cụ thể
	WorkspaceID primitive.ObjectID
	Type        string // naming | message
	IsDefault   bool   // Chỉ lấy template default
}

// Repository gom các thao tác persistence mà pipeline cần. Interface để provisioner
// test được với fake store, không cần database thật.
type Repository interface {
	FindWorkspace(ctx context.Context, id primitive.ObjectID) (wsmodels.Workspace, error)
	FindTemplate(ctx context.Context, filter TemplateFilter) (templatemodels.Template, error)
	CreateChannelRecord(ctx context.Context, channel channelmodels.Channel) (channelmodels.Channel, error)
	UpdateChannelRecord(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) error
	FindDefaultMembers(ctx context.Context, workspaceID primitive.ObjectID) ([]membermodels.Member, error)
	FindMembersBySlackIDs(ctx context.Context, workspaceID primitive.ObjectID, slackUserIds []string) ([]membermodels.Member, error)
	AssociateMembers(ctx context.Context, channelID primitive.ObjectID, members []membermodels.Member) error
	GetSettings(ctx context.Context, workspaceID primitive.ObjectID) (map[string]interface{}, error)
	CountChannelsCreatedSince(ctx context.Context, workspaceID primitive.ObjectID, since int64) (int64, error)
}

// MongoRepository Repository trên MongoDB, ghép từ các domain service.
type MongoRepository struct {
	workspaceSvc *workspacesvc.WorkspaceService
	configSvc    *workspacesvc.ConfigurationService
	templateSvc  *templatesvc.TemplateService
	channelSvc   *channelsvc.ChannelService
	memberSvc    *membersvc.MemberService
}

// NewMongoRepository tạo MongoRepository từ các domain service đã đăng ký collection.
func NewMongoRepository() (*MongoRepository, error) {
	workspaceSvc, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, err
	}
	configSvc, err := workspacesvc.NewConfigurationService()
	if err != nil {
		return nil, err
	}
	templateSvc, err := templatesvc.NewTemplateService()
	if err != nil {
		return nil, err
	}
	channelSvc, err := channelsvc.NewChannelService()
	if err != nil {
		return nil, err
	}
	memberSvc, err := membersvc.NewMemberService()
	if err != nil {
		return nil, err
	}
	return &MongoRepository{
		workspaceSvc: workspaceSvc,
		configSvc:    configSvc,
		templateSvc:  templateSvc,
		channelSvc:   channelSvc,
		memberSvc:    memberSvc,
	}, nil
}

func (r *MongoRepository) FindWorkspace(ctx context.Context, id primitive.ObjectID) (wsmodels.Workspace, error) {
	return r.workspaceSvc.FindOneById(ctx, id)
}

func (r *MongoRepository) FindTemplate(ctx context.Context, filter TemplateFilter) (templatemodels.Template, error) {
	query := bson.M{
		"workspaceId": filter.WorkspaceID,
		"type":        filter.Type,
	}
	if filter.ID != nil {
		query["_id"] = *filter.ID
	}
	if filter.IsDefault {
		query["isDefault"] = true
	}
	return r.templateSvc.FindOne(ctx, query, nil)
}

func (r *MongoRepository) CreateChannelRecord(ctx context.Context, channel channelmodels.Channel) (channelmodels.Channel, error) {
	return r.channelSvc.CreateRecord(ctx, channel)
}

func (r *MongoRepository) UpdateChannelRecord(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) error {
	_, err := r.channelSvc.UpdateById(ctx, id, patch)
	return err
}

func (r *MongoRepository) FindDefaultMembers(ctx context.Context, workspaceID primitive.ObjectID) ([]membermodels.Member, error) {
	return r.memberSvc.FindDefaultMembers(ctx, workspaceID)
}

func (r *MongoRepository) FindMembersBySlackIDs(ctx context.Context, workspaceID primitive.ObjectID, slackUserIds []string) ([]membermodels.Member, error) {
	return r.memberSvc.FindBySlackUserIds(ctx, workspaceID, slackUserIds)
}

func (r *MongoRepository) AssociateMembers(ctx context.Context, channelID primitive.ObjectID, members []membermodels.Member) error {
	return r.channelSvc.AssociateMembers(ctx, channelID, members)
}

func (r *MongoRepository) GetSettings(ctx context.Context, workspaceID primitive.ObjectID) (map[string]interface{}, error) {
	return r.configSvc.GetSettings(ctx, workspaceID)
}

func (r *MongoRepository) CountChannelsCreatedSince(ctx context.Context, workspaceID primitive.ObjectID, since int64) (int64, error) {
	return r.channelSvc.CountCreatedSince(ctx, workspaceID, since)
}
