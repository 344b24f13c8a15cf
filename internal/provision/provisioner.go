package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	channeldto "slack_deals/internal/api/channel/dto"
	channelmodels "slack_deals/internal/api/channel/models"
	templatemodels "slack_deals/internal/api/template/models"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/common"
	"slack_deals/internal/logger"
	"slack_deals/internal/naming"
	"slack_deals/internal/slack"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultChannel thông tin channel trong kết quả provision.
type ResultChannel struct {
	ID               string `json:"id"`               // Id bản ghi local
	SlackChannelId   string `json:"slackChannelId"`   // Id channel trên Slack
	SlackChannelName string `json:"slackChannelName"` // Tên channel thực tế trên Slack
	WebUrl           string `json:"webUrl"`           // Deep link vào channel
}

// Result kết quả provision thành công.
type Result struct {
	Success bool          `json:"success"`
	Channel ResultChannel `json:"channel"`
}

// Provisioner orchestrate pipeline tạo deal channel. Mọi phụ thuộc đều inject
// qua interface/function để test không cần database hay Slack thật.
type Provisioner struct {
	repo           Repository
	gatewayFactory GatewayFactory
	resolver       *MembershipResolver
	now            func() time.Time
}

// NewProvisioner tạo Provisioner. clock nil thì dùng time.Now.
func NewProvisioner(repo Repository, factory GatewayFactory, clock func() time.Time) *Provisioner {
	if clock == nil {
		clock = time.Now
	}
	return &Provisioner{
		repo:           repo,
		gatewayFactory: factory,
		resolver:       NewMembershipResolver(repo),
		now:            clock,
	}
}

// Provision chạy pipeline tạo deal channel, tuần tự từng stage.
//
// Chính sách lỗi: mọi lỗi TRƯỚC khi tạo channel trên Slack đều abort sạch
// (không side effect). Từ lúc channel đã tồn tại trên Slack, lỗi persist được
// surface cho caller (channel có thể đã tạo mà không có record local); các stage
// sau đó (mời member, topic, tin nhắn) là best-effort — lỗi chỉ log, không fail
// cả pipeline. Slack không có transaction xuyên resource nên hoàn thành một phần
// tốt hơn là rollback giả.
func (p *Provisioner) Provision(ctx context.Context, req *channeldto.ChannelCreateRequest, createdBy string) (*Result, error) {
	log := logger.GetAppLogger()

	// ---- Stage 1: validate request shape ----
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	workspaceID, _ := primitive.ObjectIDFromHex(req.WorkspaceID)

	// ---- Stage 2: resolve workspace credential ----
	workspace, err := p.repo.FindWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabaseQuery, "Không tìm thấy workspace", common.StatusNotFound, nil)
	}

	// Settings dùng cho fiscal year token và giới hạn ngày. Lỗi đọc settings không
	// abort — dùng mặc định.
	settings, err := p.repo.GetSettings(ctx, workspaceID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"workspaceId": workspaceID.Hex(),
		}).Warn("🏗️ [PROVISION] Lỗi đọc settings, dùng mặc định")
		settings = workspacesvc.DefaultSettings()
	}

	// ---- Stage 3: resolve tên channel ----
	vars := buildVariables(req, workspacesvc.ToIntSetting(settings[workspacesvc.SettingFiscalYearStart]))
	channelName, err := p.resolveChannelName(ctx, req, workspaceID, vars)
	if err != nil {
		return nil, err
	}

	// ---- Stage 4: validate tên đã resolve ----
	if validation := naming.Validate(channelName); !validation.IsValid {
		return nil, common.NewError(common.ErrCodeValidationChannelName, "Tên channel không hợp lệ", common.StatusBadRequest, validation.Violations)
	}

	// ---- Stage 5: giới hạn số channel tạo trong ngày ----
	if err := p.checkDailyLimit(ctx, workspaceID, settings); err != nil {
		return nil, err
	}

	// ---- Stage 6: tạo channel trên Slack (collision-safe) ----
	gateway := p.gatewayFactory(workspace.AccessToken)
	slackChannel, err := p.createChannelWithRecovery(ctx, gateway, channelName)
	if err != nil {
		return nil, err
	}

	// ---- Stage 7: persist channel record ----
	// Từ đây channel đã tồn tại trên Slack: lỗi persist được surface nhưng caller
	// phải hiểu là "có thể đã tạo một phần", không phải "chưa có gì xảy ra".
	record, err := p.repo.CreateChannelRecord(ctx, channelmodels.Channel{
		WorkspaceID:      workspaceID,
		SlackChannelId:   slackChannel.ID,
		SlackChannelName: slackChannel.Name,
		DealId:           req.DealId,
		DealName:         req.DealName,
		ClientName:       req.ClientName,
		DealValue:        req.DealValue,
		DealOwner:        req.DealOwner,
		DealStage:        req.DealStage,
		SalesforceId:     req.SalesforceId,
		Metadata:         req.Metadata,
		CreatedBy:        fallbackString(createdBy, "system"),
		IsArchived:       false,
	})
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"slackChannelId": slackChannel.ID,
			"channelName":    slackChannel.Name,
		}).Error("🏗️ [PROVISION] Channel đã tạo trên Slack nhưng lưu record thất bại")
		return nil, common.NewError(common.ErrCodeExternalService,
			"Channel đã tạo trên Slack nhưng lưu record thất bại", common.StatusInternalServerError, err.Error())
	}

	// ---- Stage 8: mời member (best-effort) ----
	p.inviteMembers(ctx, gateway, req, workspaceID, record.ID, slackChannel.ID)

	// ---- Stage 9: topic (best-effort, chỉ khi có stage) ----
	if req.DealStage != "" {
		topic := fmt.Sprintf("Deal Stage: %s | Owner: %s", req.DealStage, fallbackString(req.DealOwner, "Unassigned"))
		_ = gateway.SetTopic(ctx, slackChannel.ID, topic)
	}

	// ---- Stage 10: tin nhắn chào (best-effort) ----
	message := p.resolveFirstMessage(ctx, req, workspaceID, vars)
	if err := gateway.PostMessage(ctx, slackChannel.ID, message); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"slackChannelId": slackChannel.ID,
		}).Warn("🏗️ [PROVISION] Lỗi đăng tin nhắn chào, bỏ qua")
	}

	log.WithFields(map[string]interface{}{
		"channelId":      record.ID.Hex(),
		"slackChannelId": slackChannel.ID,
		"channelName":    slackChannel.Name,
		"workspaceId":    workspaceID.Hex(),
	}).Info("🏗️ [PROVISION] Tạo deal channel thành công")

	return &Result{
		Success: true,
		Channel: ResultChannel{
			ID:               record.ID.Hex(),
			SlackChannelId:   slackChannel.ID,
			SlackChannelName: slackChannel.Name,
			WebUrl:           WebURL(workspace.SlackTeamId, slackChannel.ID),
		},
	}, nil
}

// validateRequest kiểm tra shape của request: workspaceId, clientName, dealName bắt buộc.
func validateRequest(req *channeldto.ChannelCreateRequest) error {
	missing := []string{}
	if req.WorkspaceID == "" {
		missing = append(missing, "workspaceId")
	}
	if req.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if req.DealName == "" {
		missing = append(missing, "dealName")
	}
	if len(missing) > 0 {
		return common.NewError(common.ErrCodeValidationInput,
			"Thiếu trường bắt buộc: "+strings.Join(missing, ", "), common.StatusBadRequest, missing)
	}
	if !primitive.IsValidObjectID(req.WorkspaceID) {
		return common.NewError(common.ErrCodeValidationInput, "workspaceId không hợp lệ", common.StatusBadRequest, nil)
	}
	return nil
}

// buildVariables map request sang variables của naming engine. Các token phụ
// (type, region, product, priority) đọc từ metadata nếu có.
func buildVariables(req *channeldto.ChannelCreateRequest, fiscalYearStart int) naming.Variables {
	vars := naming.Variables{
		ClientName:      req.ClientName,
		DealName:        req.DealName,
		DealId:          req.DealId,
		DealOwner:       req.DealOwner,
		DealStage:       req.DealStage,
		DealValue:       req.DealValue,
		FiscalYearStart: fiscalYearStart,
	}
	vars.DealType = metadataString(req.Metadata, "dealType")
	vars.Region = metadataString(req.Metadata, "region")
	vars.Product = metadataString(req.Metadata, "product")
	vars.Priority = metadataString(req.Metadata, "priority")
	return vars
}

// resolveChannelName resolve tên channel: dùng customChannelName nếu có, không thì
// template (templateId chỉ định → default của workspace → builtin).
func (p *Provisioner) resolveChannelName(ctx context.Context, req *channeldto.ChannelCreateRequest, workspaceID primitive.ObjectID, vars naming.Variables) (string, error) {
	if req.CustomChannelName != "" {
		return req.CustomChannelName, nil
	}

	pattern := naming.DefaultNamingPattern
	if req.TemplateId != "" {
		if !primitive.IsValidObjectID(req.TemplateId) {
			return "", common.NewError(common.ErrCodeValidationInput, "templateId không hợp lệ", common.StatusBadRequest, nil)
		}
		templateID, _ := primitive.ObjectIDFromHex(req.TemplateId)
		tpl, err := p.repo.FindTemplate(ctx, TemplateFilter{
			ID:          &templateID,
			WorkspaceID: workspaceID,
			Type:        templatemodels.TemplateTypeNaming,
		})
		// Template chỉ định không tìm thấy thì rơi về pattern mặc định (theo hành vi
		// gốc), không abort.
		if err == nil {
			pattern = tpl.Template
		}
	} else {
		tpl, err := p.repo.FindTemplate(ctx, TemplateFilter{
			WorkspaceID: workspaceID,
			Type:        templatemodels.TemplateTypeNaming,
			IsDefault:   true,
		})
		if err == nil {
			pattern = tpl.Template
		}
	}

	return naming.Resolve(pattern, vars, p.now()), nil
}

// checkDailyLimit chặn khi workspace đã tạo đủ maxChannelsPerDay channel trong ngày.
func (p *Provisioner) checkDailyLimit(ctx context.Context, workspaceID primitive.ObjectID, settings map[string]interface{}) error {
	maxPerDay := workspacesvc.ToIntSetting(settings[workspacesvc.SettingMaxChannelsPerDay])
	if maxPerDay <= 0 {
		return nil
	}
	now := p.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	count, err := p.repo.CountChannelsCreatedSince(ctx, workspaceID, dayStart)
	if err != nil {
		// Đếm lỗi thì không chặn — giới hạn ngày là soft policy
		logger.GetAppLogger().WithError(err).Warn("🏗️ [PROVISION] Lỗi đếm channel trong ngày, bỏ qua giới hạn")
		return nil
	}
	if count >= int64(maxPerDay) {
		return common.NewError(common.ErrCodeBusinessRateLimit,
			fmt.Sprintf("Workspace đã đạt giới hạn %d channel/ngày", maxPerDay), common.StatusTooManyRequests, nil)
	}
	return nil
}

// createChannelWithRecovery tạo channel trên Slack. Tên đã bị chiếm thì list các
// channel chưa archive và tái sử dụng channel trùng tên — tạo channel idempotent
// theo tên trong phạm vi workspace. Giữa list và create có race window
// (time-of-check vs time-of-create) — chấp nhận, không có optimistic locking.
func (p *Provisioner) createChannelWithRecovery(ctx context.Context, gateway Gateway, name string) (*slack.Channel, error) {
	channel, err := gateway.CreateChannel(ctx, name, false)
	if err == nil {
		return channel, nil
	}
	if !errors.Is(err, slack.ErrNameTaken) {
		return nil, asExternalError(err)
	}

	// Collision recovery: tìm channel trùng tên (so theo tên đã qua gateway sanitize)
	channels, listErr := gateway.ListChannels(ctx, true)
	if listErr != nil {
		return nil, asExternalError(err)
	}
	wantName := slack.GatewaySanitizeName(name)
	for i := range channels {
		if channels[i].Name == wantName {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"channelName":    wantName,
				"slackChannelId": channels[i].ID,
			}).Info("🏗️ [PROVISION] Tên channel đã tồn tại, tái sử dụng channel cũ")
			return &channels[i], nil
		}
	}
	return nil, asExternalError(err)
}

// inviteMembers resolve tập member rồi mời vào channel và lưu liên kết.
// Toàn bộ best-effort: lỗi log rồi đi tiếp.
func (p *Provisioner) inviteMembers(ctx context.Context, gateway Gateway, req *channeldto.ChannelCreateRequest, workspaceID, recordID primitive.ObjectID, slackChannelID string) {
	log := logger.GetAppLogger()

	userIDs, err := p.resolver.ResolveMembers(ctx, workspaceID, req.UserIds)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"workspaceId": workspaceID.Hex(),
		}).Warn("🏗️ [PROVISION] Lỗi resolve member set, bỏ qua bước mời")
		return
	}
	if len(userIDs) == 0 {
		return
	}

	if err := gateway.InviteMembers(ctx, slackChannelID, userIDs); err != nil && !errors.Is(err, slack.ErrAlreadyInChannel) {
		log.WithError(err).WithFields(map[string]interface{}{
			"slackChannelId": slackChannelID,
			"userCount":      len(userIDs),
		}).Warn("🏗️ [PROVISION] Lỗi mời member vào channel, đi tiếp")
	}

	// Lưu liên kết channel ↔ member cho các member có trong store
	members, err := p.repo.FindMembersBySlackIDs(ctx, workspaceID, userIDs)
	if err != nil {
		log.WithError(err).Warn("🏗️ [PROVISION] Lỗi tìm member để lưu liên kết")
		return
	}
	if len(members) == 0 {
		return
	}
	if err := p.repo.AssociateMembers(ctx, recordID, members); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"channelId": recordID.Hex(),
		}).Warn("🏗️ [PROVISION] Lỗi lưu liên kết channel-member")
	}
}

// resolveFirstMessage chọn tin nhắn chào theo thứ tự: firstMessage của request →
// message template default của workspace → template builtin.
func (p *Provisioner) resolveFirstMessage(ctx context.Context, req *channeldto.ChannelCreateRequest, workspaceID primitive.ObjectID, vars naming.Variables) string {
	if req.FirstMessage != "" {
		return req.FirstMessage
	}
	tpl, err := p.repo.FindTemplate(ctx, TemplateFilter{
		WorkspaceID: workspaceID,
		Type:        templatemodels.TemplateTypeMessage,
		IsDefault:   true,
	})
	if err == nil {
		return naming.RenderMessage(tpl.Template, vars, p.now())
	}
	return naming.DefaultWelcomeMessage(vars, p.now())
}

// WebURL deep link vào channel trên Slack client.
func WebURL(teamID, channelID string) string {
	return fmt.Sprintf("https://app.slack.com/client/%s/%s", teamID, channelID)
}

// asExternalError wrap lỗi Slack thành ExternalServiceError, giữ status/code gốc.
func asExternalError(err error) error {
	var apiErr *slack.APIError
	if errors.As(err, &apiErr) {
		return common.NewError(common.ErrCodeExternalService,
			"Lỗi từ Slack API: "+apiErr.Code, common.StatusBadGateway, apiErr.Code)
	}
	return common.NewError(common.ErrCodeExternalService,
		"Lỗi gọi Slack API", common.StatusBadGateway, err.Error())
}

// fallbackString trả về def khi s rỗng.
func fallbackString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// metadataString đọc 1 string từ metadata map.
func metadataString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}
