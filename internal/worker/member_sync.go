package worker

import (
	"context"
	"time"

	membersvc "slack_deals/internal/api/member/service"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/global"
	"slack_deals/internal/logger"
	"slack_deals/internal/slack"
)

// MemberSyncWorker worker đồng bộ định kỳ danh sách member từ Slack về store.
// Quét tất cả workspace đang active, gọi users.list bằng token của từng workspace
// rồi upsert vào collection members. Một workspace lỗi không chặn các workspace khác.
type MemberSyncWorker struct {
	workspaceService *workspacesvc.WorkspaceService
	memberService    *membersvc.MemberService
	interval         time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewMemberSyncWorker tạo mới MemberSyncWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 giờ)
//
// Trả về:
//   - *MemberSyncWorker: Instance mới của MemberSyncWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewMemberSyncWorker(interval time.Duration) (*MemberSyncWorker, error) {
	workspaceService, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, err
	}
	memberService, err := membersvc.NewMemberService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < time.Minute {
		interval = time.Hour
	}

	return &MemberSyncWorker{
		workspaceService: workspaceService,
		memberService:    memberService,
		interval:         interval,
	}, nil
}

// Start bắt đầu background worker đồng bộ member
func (w *MemberSyncWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("👥 [MEMBER_SYNC] Starting Member Sync Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("👥 [MEMBER_SYNC] Member Sync Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("👥 [MEMBER_SYNC] Panic khi sync members, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.syncAllWorkspaces(ctx)
			}()
		}
	}
}

// syncAllWorkspaces sync member cho từng workspace active, lỗi thì log rồi đi tiếp.
func (w *MemberSyncWorker) syncAllWorkspaces(ctx context.Context) {
	log := logger.GetAppLogger()

	workspaces, err := w.workspaceService.FindActive(ctx)
	if err != nil {
		log.WithError(err).Error("👥 [MEMBER_SYNC] Failed to list active workspaces")
		return
	}

	for _, workspace := range workspaces {
		client := slack.NewClientWithBaseURL(workspace.AccessToken, global.MongoDB_ServerConfig.SlackAPIBaseURL)
		users, err := client.ListUsers(ctx)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
				"slackTeamId": workspace.SlackTeamId,
			}).Error("👥 [MEMBER_SYNC] Failed to list users from Slack")
			continue
		}

		synced, err := w.memberService.SyncFromSlack(ctx, workspace.ID, users)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
			}).Error("👥 [MEMBER_SYNC] Failed to upsert members")
			continue
		}

		if synced > 0 {
			log.WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
				"synced":      synced,
			}).Info("👥 [MEMBER_SYNC] Synced members from Slack")
		}
		// Nếu synced = 0, không log (giảm log noise)
	}
}
