package worker

import (
	"context"
	"time"

	channelsvc "slack_deals/internal/api/channel/service"
	workspacesvc "slack_deals/internal/api/workspace/service"
	"slack_deals/internal/global"
	"slack_deals/internal/logger"
	"slack_deals/internal/slack"
)

// AutoArchiveWorker worker để tự động archive các deal channel quá hạn.
// Đọc setting autoArchiveDays của từng workspace, quét các channel active tạo
// trước ngưỡng đó rồi archive trên Slack và đánh dấu record isArchived.
type AutoArchiveWorker struct {
	workspaceService *workspacesvc.WorkspaceService
	configService    *workspacesvc.ConfigurationService
	channelService   *channelsvc.ChannelService
	interval         time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewAutoArchiveWorker tạo mới AutoArchiveWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 12 giờ)
//
// Trả về:
//   - *AutoArchiveWorker: Instance mới của AutoArchiveWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewAutoArchiveWorker(interval time.Duration) (*AutoArchiveWorker, error) {
	workspaceService, err := workspacesvc.NewWorkspaceService()
	if err != nil {
		return nil, err
	}
	configService, err := workspacesvc.NewConfigurationService()
	if err != nil {
		return nil, err
	}
	channelService, err := channelsvc.NewChannelService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < time.Minute {
		interval = 12 * time.Hour
	}

	return &AutoArchiveWorker{
		workspaceService: workspaceService,
		configService:    configService,
		channelService:   channelService,
		interval:         interval,
	}, nil
}

// Start bắt đầu background worker auto-archive
func (w *AutoArchiveWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📦 [AUTO_ARCHIVE] Starting Auto Archive Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📦 [AUTO_ARCHIVE] Auto Archive Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📦 [AUTO_ARCHIVE] Panic khi archive channels, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.archiveAllWorkspaces(ctx)
			}()
		}
	}
}

// archiveAllWorkspaces quét từng workspace active và archive các channel quá hạn.
func (w *AutoArchiveWorker) archiveAllWorkspaces(ctx context.Context) {
	log := logger.GetAppLogger()

	workspaces, err := w.workspaceService.FindActive(ctx)
	if err != nil {
		log.WithError(err).Error("📦 [AUTO_ARCHIVE] Failed to list active workspaces")
		return
	}

	for _, workspace := range workspaces {
		archiveDays, err := w.configService.GetIntSetting(ctx, workspace.ID, workspacesvc.SettingAutoArchiveDays)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
			}).Error("📦 [AUTO_ARCHIVE] Failed to read autoArchiveDays setting")
			continue
		}
		if archiveDays <= 0 {
			// Workspace tắt auto-archive
			continue
		}

		before := time.Now().AddDate(0, 0, -archiveDays).UnixMilli()
		channels, err := w.channelService.FindOlderActive(ctx, workspace.ID, before)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
			}).Error("📦 [AUTO_ARCHIVE] Failed to find stale channels")
			continue
		}
		if len(channels) == 0 {
			continue
		}

		client := slack.NewClientWithBaseURL(workspace.AccessToken, global.MongoDB_ServerConfig.SlackAPIBaseURL)
		archived := 0
		for _, channel := range channels {
			if err := client.ArchiveChannel(ctx, channel.SlackChannelId); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"channelId":      channel.ID.Hex(),
					"slackChannelId": channel.SlackChannelId,
				}).Error("📦 [AUTO_ARCHIVE] Failed to archive channel on Slack")
				continue
			}
			if _, err := w.channelService.MarkArchived(ctx, channel.ID); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"channelId": channel.ID.Hex(),
				}).Error("📦 [AUTO_ARCHIVE] Archived on Slack but failed to mark record")
				continue
			}
			archived++
		}

		if archived > 0 {
			log.WithFields(map[string]interface{}{
				"workspaceId": workspace.ID.Hex(),
				"archiveDays": archiveDays,
				"archived":    archived,
			}).Info("📦 [AUTO_ARCHIVE] Archived stale deal channels")
		}
	}
}
