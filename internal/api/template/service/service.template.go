// Package templatesvc - Service template (templates): CRUD, cờ default, seed builtin.
package templatesvc

import (
	"context"
	"fmt"
	"time"

	basesvc "slack_deals/internal/api/base/service"
	templatedto "slack_deals/internal/api/template/dto"
	templatemodels "slack_deals/internal/api/template/models"
	"slack_deals/internal/common"
	"slack_deals/internal/global"
	"slack_deals/internal/naming"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// TemplateService xử lý template naming/message theo workspace.
type TemplateService struct {
	*basesvc.BaseServiceMongoImpl[templatemodels.Template]
}

// NewTemplateService tạo TemplateService mới.
func NewTemplateService() (*TemplateService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Templates)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Templates, common.ErrNotFound)
	}
	return &TemplateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[templatemodels.Template](coll),
	}, nil
}

// ListByType trả về template của workspace theo loại (naming/message).
func (s *TemplateService) ListByType(ctx context.Context, workspaceID primitive.ObjectID, templateType string) ([]templatemodels.Template, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return s.Find(ctx, bson.M{"workspaceId": workspaceID, "type": templateType}, opts)
}

// FindDefault trả về template default của (workspace, type). Không có thì ErrNotFound.
func (s *TemplateService) FindDefault(ctx context.Context, workspaceID primitive.ObjectID, templateType string) (templatemodels.Template, error) {
	return s.FindOne(ctx, bson.M{
		"workspaceId": workspaceID,
		"type":        templateType,
		"isDefault":   true,
	}, nil)
}

// FindByIdAndType trả về template theo id, đúng workspace và đúng loại.
func (s *TemplateService) FindByIdAndType(ctx context.Context, id, workspaceID primitive.ObjectID, templateType string) (templatemodels.Template, error) {
	return s.FindOne(ctx, bson.M{
		"_id":         id,
		"workspaceId": workspaceID,
		"type":        templateType,
	}, nil)
}

// CreateTemplate tạo template mới. Đặt isDefault=true thì clear cờ default của
// template cùng (workspace, type) trước để giữ bất biến "tối đa 1 default".
func (s *TemplateService) CreateTemplate(ctx context.Context, input *templatedto.TemplateCreateInput, workspaceID primitive.ObjectID) (templatemodels.Template, error) {
	if input.IsDefault {
		if err := s.clearDefault(ctx, workspaceID, input.Type); err != nil {
			return *new(templatemodels.Template), err
		}
	}
	now := time.Now().UnixMilli()
	doc := templatemodels.Template{
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Type:        input.Type,
		Template:    input.Template,
		Variables:   input.Variables,
		IsDefault:   input.IsDefault,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Variables == nil {
		doc.Variables = []string{}
	}
	return s.InsertOne(ctx, doc)
}

// SetDefault đặt 1 template làm default của (workspace, type), clear default cũ.
func (s *TemplateService) SetDefault(ctx context.Context, id, workspaceID primitive.ObjectID) (templatemodels.Template, error) {
	tpl, err := s.FindOne(ctx, bson.M{"_id": id, "workspaceId": workspaceID}, nil)
	if err != nil {
		return tpl, err
	}
	if err := s.clearDefault(ctx, workspaceID, tpl.Type); err != nil {
		return *new(templatemodels.Template), err
	}
	update := &basesvc.UpdateData{Set: map[string]interface{}{"isDefault": true}}
	return s.UpdateById(ctx, id, update)
}

// clearDefault tắt cờ default của mọi template cùng (workspace, type).
func (s *TemplateService) clearDefault(ctx context.Context, workspaceID primitive.ObjectID, templateType string) error {
	filter := bson.M{
		"workspaceId": workspaceID,
		"type":        templateType,
		"isDefault":   true,
	}
	update := bson.M{"$set": bson.M{"isDefault": false}}
	_, err := s.UpdateMany(ctx, filter, update, nil)
	return err
}

// BuiltinAsModels chuyển bộ template dựng sẵn thành model (chưa gắn workspace),
// dùng làm fallback trả về khi workspace chưa có template nào.
func BuiltinAsModels(builtin []naming.BuiltinTemplate, templateType string) []templatemodels.Template {
	result := make([]templatemodels.Template, 0, len(builtin))
	for _, b := range builtin {
		result = append(result, templatemodels.Template{
			Name:        b.Name,
			Type:        templateType,
			Template:    b.Template,
			Variables:   b.Variables,
			IsDefault:   b.IsDefault,
			Description: b.Description,
			IsSystem:    true,
		})
	}
	return result
}

// ListWithBuiltinFallback trả về template của workspace theo loại; workspace chưa có
// template nào thì trả về bộ dựng sẵn.
func (s *TemplateService) ListWithBuiltinFallback(ctx context.Context, workspaceID primitive.ObjectID, templateType string) ([]templatemodels.Template, error) {
	templates, err := s.ListByType(ctx, workspaceID, templateType)
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		return templates, nil
	}
	switch templateType {
	case templatemodels.TemplateTypeNaming:
		return BuiltinAsModels(naming.BuiltinNamingTemplates(), templateType), nil
	case templatemodels.TemplateTypeMessage:
		return BuiltinAsModels(naming.BuiltinMessageTemplates(), templateType), nil
	default:
		return templates, nil
	}
}
