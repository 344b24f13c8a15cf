package global

import (
	"slack_deals/config"
	"slack_deals/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Workspaces     string // Tên collection cho workspace Slack
	Channels       string // Tên collection cho channel đã tạo
	ChannelMembers string // Tên collection cho liên kết channel - member
	Members        string // Tên collection cho thành viên workspace
	Templates      string // Tên collection cho naming template
	Configurations string // Tên collection cho cấu hình workspace
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{
	Workspaces:     "workspaces",
	Channels:       "channels",
	ChannelMembers: "channel_members",
	Members:        "members",
	Templates:      "templates",
	Configurations: "configurations",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
