// Package provision - Test pipeline với fake repository và fake gateway.
package provision

import (
	"context"
	"testing"
	"time"

	channeldto "slack_deals/internal/api/channel/dto"
	channelmodels "slack_deals/internal/api/channel/models"
	membermodels "slack_deals/internal/api/member/models"
	templatemodels "slack_deals/internal/api/template/models"
	wsmodels "slack_deals/internal/api/workspace/models"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/common"
	"slack_deals/internal/slack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRepo Repository trong bộ nhớ cho test.
type fakeRepo struct {
	workspace      wsmodels.Workspace
	workspaceErr   error
	templates      []templatemodels.Template
	defaultMembers []membermodels.Member
	members        []membermodels.Member
	settings       map[string]interface{}
	channelCount   int64

	createdRecords  []channelmodels.Channel
	createRecordErr error
	associated      [][]membermodels.Member
}

func (f *fakeRepo) FindWorkspace(_ context.Context, id primitive.ObjectID) (wsmodels.Workspace, error) {
	if f.workspaceErr != nil {
		return wsmodels.Workspace{}, f.workspaceErr
	}
	return f.workspace, nil
}

func (f *fakeRepo) FindTemplate(_ context.Context, filter TemplateFilter) (templatemodels.Template, error) {
	for _, tpl := range f.templates {
		if tpl.Type != filter.Type {
			continue
		}
		if filter.ID != nil && tpl.ID != *filter.ID {
			continue
		}
		if filter.IsDefault && !tpl.IsDefault {
			continue
		}
		return tpl, nil
	}
	return templatemodels.Template{}, common.ErrNotFound
}

func (f *fakeRepo) CreateChannelRecord(_ context.Context, channel channelmodels.Channel) (channelmodels.Channel, error) {
	if f.createRecordErr != nil {
		return channelmodels.Channel{}, f.createRecordErr
	}
	channel.ID = primitive.NewObjectID()
	f.createdRecords = append(f.createdRecords, channel)
	return channel, nil
}

func (f *fakeRepo) UpdateChannelRecord(_ context.Context, _ primitive.ObjectID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeRepo) FindDefaultMembers(_ context.Context, _ primitive.ObjectID) ([]membermodels.Member, error) {
	return f.defaultMembers, nil
}

func (f *fakeRepo) FindMembersBySlackIDs(_ context.Context, _ primitive.ObjectID, ids []string) ([]membermodels.Member, error) {
	var found []membermodels.Member
	for _, m := range f.members {
		for _, id := range ids {
			if m.SlackUserId == id {
				found = append(found, m)
			}
		}
	}
	return found, nil
}

func (f *fakeRepo) AssociateMembers(_ context.Context, _ primitive.ObjectID, members []membermodels.Member) error {
	f.associated = append(f.associated, members)
	return nil
}

func (f *fakeRepo) GetSettings(_ context.Context, _ primitive.ObjectID) (map[string]interface{}, error) {
	if f.settings != nil {
		return f.settings, nil
	}
	return workspacesvc.DefaultSettings(), nil
}

func (f *fakeRepo) CountChannelsCreatedSince(_ context.Context, _ primitive.ObjectID, _ int64) (int64, error) {
	return f.channelCount, nil
}

// fakeGateway Gateway ghi lại các call cho test.
type fakeGateway struct {
	createErr    error
	createCalls  []string
	inviteErr    error
	invited      [][]string
	posted       []string
	topics       []string
	listChannels []slack.Channel
	listErr      error
	archivedIDs  []string
	createdID    string
}

func (g *fakeGateway) CreateChannel(_ context.Context, name string, _ bool) (*slack.Channel, error) {
	g.createCalls = append(g.createCalls, name)
	if g.createErr != nil {
		return nil, g.createErr
	}
	id := g.createdID
	if id == "" {
		id = "C100"
	}
	return &slack.Channel{ID: id, Name: slack.GatewaySanitizeName(name)}, nil
}

func (g *fakeGateway) InviteMembers(_ context.Context, _ string, userIDs []string) error {
	g.invited = append(g.invited, userIDs)
	return g.inviteErr
}

func (g *fakeGateway) PostMessage(_ context.Context, _ string, text string) error {
	g.posted = append(g.posted, text)
	return nil
}

func (g *fakeGateway) SetTopic(_ context.Context, _ string, topic string) error {
	g.topics = append(g.topics, topic)
	return nil
}

func (g *fakeGateway) ListChannels(_ context.Context, _ bool) ([]slack.Channel, error) {
	return g.listChannels, g.listErr
}

func (g *fakeGateway) ArchiveChannel(_ context.Context, channelID string) error {
	g.archivedIDs = append(g.archivedIDs, channelID)
	return nil
}

var testClock = func() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestProvisioner(repo *fakeRepo, gateway *fakeGateway) *Provisioner {
	return NewProvisioner(repo, func(token string) Gateway { return gateway }, testClock)
}

func validRequest(workspaceID primitive.ObjectID) *channeldto.ChannelCreateRequest {
	return &channeldto.ChannelCreateRequest{
		WorkspaceID: workspaceID.Hex(),
		ClientName:  "Acme Corporation",
		DealName:    "Enterprise License",
	}
}

func testWorkspace() (primitive.ObjectID, wsmodels.Workspace) {
	id := primitive.NewObjectID()
	return id, wsmodels.Workspace{
		ID:          id,
		SlackTeamId: "T999",
		AccessToken: "xoxb-test",
		IsActive:    true,
	}
}

func TestProvision_HappyPath(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{}

	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "U1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	// Template mặc định: deal-{client_short}-{date}
	assert.Equal(t, "deal-acme-corpo-2024-06-01", result.Channel.SlackChannelName)
	assert.Equal(t, "C100", result.Channel.SlackChannelId)
	assert.Equal(t, "https://app.slack.com/client/T999/C100", result.Channel.WebUrl)

	require.Len(t, repo.createdRecords, 1)
	assert.Equal(t, "Acme Corporation", repo.createdRecords[0].ClientName)
	assert.Equal(t, "U1", repo.createdRecords[0].CreatedBy)

	// Không có member nào -> không gọi invite, nhưng vẫn đăng tin nhắn chào
	assert.Empty(t, gateway.invited)
	require.Len(t, gateway.posted, 1)
	assert.Contains(t, gateway.posted[0], "*Client:* Acme Corporation")
}

func TestProvision_MissingRequiredFields(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{}
	p := newTestProvisioner(repo, gateway)

	_, err := p.Provision(context.Background(), &channeldto.ChannelCreateRequest{ClientName: "Acme"}, "")
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	// Validation fail thì không có side effect nào lên Slack
	assert.Empty(t, gateway.createCalls)
	assert.Empty(t, repo.createdRecords)
}

func TestProvision_WorkspaceNotFound(t *testing.T) {
	repo := &fakeRepo{workspaceErr: common.ErrNotFound}
	gateway := &fakeGateway{}

	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(primitive.NewObjectID()), "")
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusNotFound, appErr.StatusCode)
	assert.Empty(t, gateway.createCalls)
}

func TestProvision_CustomChannelName(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{}

	req := validRequest(wsID)
	req.CustomChannelName = "my-custom-channel"
	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, "my-custom-channel", result.Channel.SlackChannelName)
}

func TestProvision_InvalidCustomName(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{}

	req := validRequest(wsID)
	req.CustomChannelName = "-Invalid Name!"
	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), req, "")
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeValidationChannelName.Code, appErr.Code.Code)
	assert.Empty(t, gateway.createCalls)
}

func TestProvision_WorkspaceDefaultTemplate(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{
		workspace: ws,
		templates: []templatemodels.Template{
			{
				ID:          primitive.NewObjectID(),
				WorkspaceID: wsID,
				Type:        templatemodels.TemplateTypeNaming,
				Template:    "deal-{stage}-{client_short}",
				IsDefault:   true,
			},
		},
	}
	gateway := &fakeGateway{}

	req := validRequest(wsID)
	req.DealStage = "negotiation"
	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, "deal-negotiation-acme-corpo", result.Channel.SlackChannelName)
}

func TestProvision_CollisionRecovery(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{
		createErr: slack.ErrNameTaken,
		listChannels: []slack.Channel{
			{ID: "C1", Name: "general"},
			{ID: "C42", Name: "deal-acme-corpo-2024-06-01"},
		},
	}

	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	// Tái sử dụng channel cũ cùng tên thay vì báo lỗi
	assert.Equal(t, "C42", result.Channel.SlackChannelId)
	require.Len(t, repo.createdRecords, 1)
}

func TestProvision_CollisionWithoutMatchPropagates(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{
		createErr:    slack.ErrNameTaken,
		listChannels: []slack.Channel{{ID: "C1", Name: "general"}},
	}

	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeExternalService.Code, appErr.Code.Code)
}

func TestProvision_ExternalError(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{createErr: &slack.APIError{StatusCode: 200, Code: "restricted_action"}}

	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeExternalService.Code, appErr.Code.Code)
	assert.Equal(t, "restricted_action", appErr.Details)
	assert.Empty(t, repo.createdRecords)
}

func TestProvision_PersistFailureSurfaced(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws, createRecordErr: common.ErrConnection}
	gateway := &fakeGateway{}

	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.Error(t, err)
	// Channel đã tạo trên Slack, lỗi persist vẫn phải surface cho caller
	require.Len(t, gateway.createCalls, 1)
}

func TestProvision_InvitesDefaultAndExplicitMembers(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{
		workspace: ws,
		defaultMembers: []membermodels.Member{
			{ID: primitive.NewObjectID(), SlackUserId: "U1", IsDefaultMember: true, IsActive: true},
			{ID: primitive.NewObjectID(), SlackUserId: "U2", IsDefaultMember: true, IsActive: true},
		},
		members: []membermodels.Member{
			{ID: primitive.NewObjectID(), SlackUserId: "U1"},
			{ID: primitive.NewObjectID(), SlackUserId: "U2"},
			{ID: primitive.NewObjectID(), SlackUserId: "U3"},
		},
	}
	gateway := &fakeGateway{}

	req := validRequest(wsID)
	req.UserIds = []string{"U2", "U3"}
	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), req, "")
	require.NoError(t, err)

	require.Len(t, gateway.invited, 1)
	// Hợp nhất khử trùng lặp: {U1, U2} ∪ {U2, U3} = {U1, U2, U3}
	assert.ElementsMatch(t, []string{"U1", "U2", "U3"}, gateway.invited[0])
	require.Len(t, repo.associated, 1)
	assert.Len(t, repo.associated[0], 3)
}

func TestProvision_InviteFailureDoesNotAbort(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{
		workspace: ws,
		defaultMembers: []membermodels.Member{
			{ID: primitive.NewObjectID(), SlackUserId: "U1", IsDefaultMember: true, IsActive: true},
		},
	}
	gateway := &fakeGateway{inviteErr: &slack.APIError{StatusCode: 200, Code: "cant_invite"}}

	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestProvision_AlreadyInChannelTreatedAsSuccess(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{
		workspace: ws,
		defaultMembers: []membermodels.Member{
			{ID: primitive.NewObjectID(), SlackUserId: "U1", IsDefaultMember: true, IsActive: true},
		},
	}
	gateway := &fakeGateway{inviteErr: slack.ErrAlreadyInChannel}

	result, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestProvision_TopicOnlyWhenStagePresent(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{}
	p := newTestProvisioner(repo, gateway)

	// Không có stage -> không đặt topic
	_, err := p.Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	assert.Empty(t, gateway.topics)

	// Có stage -> topic kèm owner (Unassigned khi thiếu)
	req := validRequest(wsID)
	req.DealStage = "Negotiation"
	_, err = p.Provision(context.Background(), req, "")
	require.NoError(t, err)
	require.Len(t, gateway.topics, 1)
	assert.Equal(t, "Deal Stage: Negotiation | Owner: Unassigned", gateway.topics[0])
}

func TestProvision_FirstMessageFallbackChain(t *testing.T) {
	wsID, ws := testWorkspace()

	// 1. firstMessage của request thắng tất cả
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{}
	req := validRequest(wsID)
	req.FirstMessage = "custom hello"
	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), req, "")
	require.NoError(t, err)
	require.Len(t, gateway.posted, 1)
	assert.Equal(t, "custom hello", gateway.posted[0])

	// 2. Message template default của workspace
	repo = &fakeRepo{
		workspace: ws,
		templates: []templatemodels.Template{
			{
				ID:          primitive.NewObjectID(),
				WorkspaceID: wsID,
				Type:        templatemodels.TemplateTypeMessage,
				Template:    "Welcome {client}!",
				IsDefault:   true,
			},
		},
	}
	gateway = &fakeGateway{}
	_, err = newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	require.Len(t, gateway.posted, 1)
	assert.Equal(t, "Welcome Acme Corporation!", gateway.posted[0])

	// 3. Không có template -> tin nhắn chào builtin
	repo = &fakeRepo{workspace: ws}
	gateway = &fakeGateway{}
	_, err = newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	require.Len(t, gateway.posted, 1)
	assert.Contains(t, gateway.posted[0], "New Deal Channel Created")
}

func TestProvision_DailyLimitEnforced(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{
		workspace:    ws,
		settings:     map[string]interface{}{workspacesvc.SettingMaxChannelsPerDay: 2},
		channelCount: 2,
	}
	gateway := &fakeGateway{}

	_, err := newTestProvisioner(repo, gateway).Provision(context.Background(), validRequest(wsID), "")
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeBusinessRateLimit.Code, appErr.Code.Code)
	assert.Equal(t, common.StatusTooManyRequests, appErr.StatusCode)
	assert.Empty(t, gateway.createCalls)
}

// Gọi provision 2 lần với input cùng tên: lần 2 nhận lại đúng channel id cũ
// nhờ collision recovery — idempotent theo tên.
func TestProvision_IdempotentByName(t *testing.T) {
	wsID, ws := testWorkspace()
	repo := &fakeRepo{workspace: ws}
	gateway := &fakeGateway{createdID: "C7"}
	p := newTestProvisioner(repo, gateway)

	first, err := p.Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)

	// Lần 2: Slack báo name_taken, list trả về channel đã tạo
	gateway.createErr = slack.ErrNameTaken
	gateway.listChannels = []slack.Channel{{ID: "C7", Name: first.Channel.SlackChannelName}}

	second, err := p.Provision(context.Background(), validRequest(wsID), "")
	require.NoError(t, err)
	assert.Equal(t, first.Channel.SlackChannelId, second.Channel.SlackChannelId)
}
