// Package workspacesvc - Service cấu hình workspace (configurations).
package workspacesvc

import (
	"context"
	"fmt"

	basesvc "slack_deals/internal/api/base/service"
	wsmodels "slack_deals/internal/api/workspace/models"
	"slack_deals/internal/common"
	"slack_deals/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các key settings được hệ thống đọc trực tiếp.
const (
	SettingAutoArchiveDays         = "autoArchiveDays"
	SettingRequireApproval         = "requireApproval"
	SettingNotifyOnCreate          = "notifyOnCreate"
	SettingAllowCustomNames        = "allowCustomNames"
	SettingEnforceNamingConvention = "enforceNamingConvention"
	SettingMaxChannelsPerDay       = "maxChannelsPerDay"
	SettingFiscalYearStart         = "fiscalYearStart"
)

// DefaultSettings giá trị mặc định cho key chưa được workspace cấu hình.
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		SettingAutoArchiveDays:         90,
		SettingRequireApproval:         false,
		SettingNotifyOnCreate:          true,
		SettingAllowCustomNames:        true,
		SettingEnforceNamingConvention: false,
		SettingMaxChannelsPerDay:       50,
		SettingFiscalYearStart:         1,
	}
}

// ConfigurationService xử lý settings key/value theo workspace.
type ConfigurationService struct {
	*basesvc.BaseServiceMongoImpl[wsmodels.Configuration]
}

// NewConfigurationService tạo ConfigurationService mới.
func NewConfigurationService() (*ConfigurationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Configurations)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Configurations, common.ErrNotFound)
	}
	return &ConfigurationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[wsmodels.Configuration](coll),
	}, nil
}

// GetSettings trả về toàn bộ settings của workspace: mặc định phủ bởi giá trị đã lưu.
func (s *ConfigurationService) GetSettings(ctx context.Context, workspaceID primitive.ObjectID) (map[string]interface{}, error) {
	configs, err := s.Find(ctx, bson.M{"workspaceId": workspaceID}, nil)
	if err != nil {
		return nil, err
	}
	settings := DefaultSettings()
	for _, cfg := range configs {
		settings[cfg.Key] = cfg.Value
	}
	return settings, nil
}

// PutSettings upsert từng key vào configurations. Trả về settings sau khi merge.
func (s *ConfigurationService) PutSettings(ctx context.Context, workspaceID primitive.ObjectID, settings map[string]interface{}) (map[string]interface{}, error) {
	for key, value := range settings {
		update := &basesvc.UpdateData{
			Set: map[string]interface{}{"value": value},
			SetOnInsert: map[string]interface{}{
				"workspaceId": workspaceID,
				"key":         key,
			},
		}
		if _, err := s.Upsert(ctx, bson.M{"workspaceId": workspaceID, "key": key}, update); err != nil {
			return nil, err
		}
	}
	return s.GetSettings(ctx, workspaceID)
}

// GetIntSetting đọc 1 setting dạng số nguyên, chịu được value lưu dạng float64/int32/int64
// (JSON decode và BSON decode trả về kiểu khác nhau).
func (s *ConfigurationService) GetIntSetting(ctx context.Context, workspaceID primitive.ObjectID, key string) (int, error) {
	settings, err := s.GetSettings(ctx, workspaceID)
	if err != nil {
		return 0, err
	}
	return ToIntSetting(settings[key]), nil
}

// ToIntSetting ép giá trị setting về int. Giá trị không phải số trả về 0.
func ToIntSetting(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	default:
		return 0
	}
}
