package utility

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransformConfig chứa cấu hình parse từ struct tag `transform`.
// Format tag: transform:"<type>[,map=<field>][,optional]"
// Ví dụ: transform:"str2objectid,map=TemplateID,optional"
type TransformConfig struct {
	Type     string // Loại transform: str2objectid
	MapTo    string // Tên field target trong Model (nếu khác tên field DTO)
	Optional bool   // Bỏ qua lỗi transform nếu true
}

// ParseTransformTag parse struct tag transform thành TransformConfig
func ParseTransformTag(tag string) (*TransformConfig, error) {
	if tag == "" {
		return nil, fmt.Errorf("transform tag rỗng")
	}

	config := &TransformConfig{}
	parts := strings.Split(tag, ",")
	config.Type = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case part == "optional":
			config.Optional = true
		case strings.HasPrefix(part, "map="):
			config.MapTo = strings.TrimPrefix(part, "map=")
		default:
			return nil, fmt.Errorf("option không hợp lệ trong transform tag: %s", part)
		}
	}

	return config, nil
}

// TransformFieldValue chuyển đổi giá trị field theo TransformConfig
func TransformFieldValue(value interface{}, config *TransformConfig) (interface{}, error) {
	switch config.Type {
	case "str2objectid":
		strValue, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("str2objectid yêu cầu giá trị string, nhận được %T", value)
		}
		if strValue == "" {
			if config.Optional {
				return nil, nil
			}
			return nil, fmt.Errorf("str2objectid: giá trị rỗng")
		}
		objID, err := primitive.ObjectIDFromHex(strValue)
		if err != nil {
			return nil, fmt.Errorf("str2objectid: '%s' không phải ObjectID hợp lệ", strValue)
		}
		return objID, nil
	default:
		return nil, fmt.Errorf("loại transform không được hỗ trợ: %s", config.Type)
	}
}
