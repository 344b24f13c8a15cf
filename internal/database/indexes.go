// Package database - Index cho các collection của hệ thống provisioning.
package database

import (
	"context"
	"strings"

	"slack_deals/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo các index cần thiết cho toàn bộ collection.
// Gọi một lần khi khởi động server.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// workspaces: slackTeamId unique — một workspace Slack chỉ cài đặt một lần
	workspaces := db.Collection(global.MongoDB_ColNames.Workspaces)
	if _, err := workspaces.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slackTeamId", Value: 1}},
		Options: options.Index().SetName("workspace_team_id").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// channels: (workspaceId, slackChannelName) — tra cứu trùng tên khi provision
	channels := db.Collection(global.MongoDB_ColNames.Channels)
	if _, err := channels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "slackChannelName", Value: 1},
		},
		Options: options.Index().SetName("channel_workspace_name"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// channels: (workspaceId, dealId) sparse — tra cứu channel theo deal
	if _, err := channels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "dealId", Value: 1},
		},
		Options: options.Index().SetName("channel_workspace_deal").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// channels: (workspaceId, createdAt) — đếm channel tạo trong ngày (rate limit)
	if _, err := channels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("channel_workspace_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// members: (workspaceId, slackUserId) unique — sync member từ Slack
	members := db.Collection(global.MongoDB_ColNames.Members)
	if _, err := members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "slackUserId", Value: 1},
		},
		Options: options.Index().SetName("member_workspace_slack_user").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// channel_members: (channelId, memberId) unique — một liên kết duy nhất
	channelMembers := db.Collection(global.MongoDB_ColNames.ChannelMembers)
	if _, err := channelMembers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "channelId", Value: 1},
			{Key: "memberId", Value: 1},
		},
		Options: options.Index().SetName("channel_member_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// templates: (workspaceId, isDefault) — tra cứu template mặc định
	templates := db.Collection(global.MongoDB_ColNames.Templates)
	if _, err := templates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "isDefault", Value: 1},
		},
		Options: options.Index().SetName("template_workspace_default"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// configurations: (workspaceId, key) unique — mỗi setting một document
	configurations := db.Collection(global.MongoDB_ColNames.Configurations)
	if _, err := configurations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetName("configuration_workspace_key").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
