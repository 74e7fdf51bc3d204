package model

import (
	"math"
	"strings"
	"time"
)

// Timestamps 通用时间戳字段（所有业务模型嵌入）
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// RoundRating 评分保留两位小数
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// NormalizeTopic 话题 / 目标标题比较前的规范化：去首尾空白并转小写
func NormalizeTopic(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
