package main

import (
	"context"

	basesvc "slack_deals/internal/api/base/service"
	templatemodels "slack_deals/internal/api/template/models"
	templatesvc "slack_deals/internal/api/template/service"
	"slack_deals/internal/logger"
	"slack_deals/internal/naming"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData seed catalog template dựng sẵn (naming + message) vào collection
// templates với cờ isSystem. Chỉ chạy khi catalog chưa tồn tại, nên an toàn khi
// gọi lại ở mỗi lần khởi động.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	templateService, err := templatesvc.NewTemplateService()
	if err != nil {
		log.Fatalf("Failed to initialize template service: %v", err)
	}

	ctx := basesvc.WithSystemDataInsertAllowed(context.Background())

	// Catalog đã seed rồi thì bỏ qua
	count, err := templateService.CountDocuments(ctx, bson.M{"isSystem": true})
	if err != nil {
		log.WithError(err).Error("❌ [INIT] Failed to check existing system templates")
		return
	}
	if count > 0 {
		log.WithFields(map[string]interface{}{
			"existing": count,
		}).Info("✅ [INIT] System template catalog already seeded, skipping")
		return
	}

	seeded := 0
	catalog := append(
		templatesvc.BuiltinAsModels(naming.BuiltinNamingTemplates(), templatemodels.TemplateTypeNaming),
		templatesvc.BuiltinAsModels(naming.BuiltinMessageTemplates(), templatemodels.TemplateTypeMessage)...,
	)
	for _, tpl := range catalog {
		if _, err := templateService.InsertOne(ctx, tpl); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"template": tpl.Name,
				"type":     tpl.Type,
			}).Error("❌ [INIT] Failed to seed system template")
			continue
		}
		seeded++
	}

	log.WithFields(map[string]interface{}{
		"seeded": seeded,
	}).Info("✅ [INIT] InitDefaultData completed successfully")
}
