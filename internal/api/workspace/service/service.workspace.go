// Package workspacesvc - Service quản lý workspace Slack (workspaces).
package workspacesvc

import (
	"context"
	"fmt"

	basesvc "slack_deals/internal/api/base/service"
	wsdto "slack_deals/internal/api/workspace/dto"
	wsmodels "slack_deals/internal/api/workspace/models"
	"slack_deals/internal/common"
	"slack_deals/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// WorkspaceService xử lý CRUD workspace và install upsert.
type WorkspaceService struct {
	*basesvc.BaseServiceMongoImpl[wsmodels.Workspace]
}

// NewWorkspaceService tạo WorkspaceService mới.
func NewWorkspaceService() (*WorkspaceService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Workspaces)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Workspaces, common.ErrNotFound)
	}
	return &WorkspaceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[wsmodels.Workspace](coll),
	}, nil
}

// FindByTeamId tìm workspace theo Slack team id.
func (s *WorkspaceService) FindByTeamId(ctx context.Context, teamId string) (wsmodels.Workspace, error) {
	return s.FindOne(ctx, bson.M{"slackTeamId": teamId}, nil)
}

// Install upsert workspace theo slackTeamId với credential mới từ install callback.
// Cài lại app vào workspace đã có thì cập nhật token, không tạo bản ghi mới.
func (s *WorkspaceService) Install(ctx context.Context, input *wsdto.WorkspaceInstallInput) (wsmodels.Workspace, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"slackTeamName": input.SlackTeamName,
			"accessToken":   input.AccessToken,
			"botUserId":     input.BotUserId,
			"installedBy":   input.InstalledBy,
			"isActive":      true,
		},
		SetOnInsert: map[string]interface{}{
			"slackTeamId": input.SlackTeamId,
		},
	}
	return s.Upsert(ctx, bson.M{"slackTeamId": input.SlackTeamId}, update)
}

// FindActive trả về tất cả workspace đang active (cho background workers).
func (s *WorkspaceService) FindActive(ctx context.Context) ([]wsmodels.Workspace, error) {
	return s.Find(ctx, bson.M{"isActive": true}, nil)
}
