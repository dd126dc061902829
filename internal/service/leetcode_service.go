package service

import (
	"errors"
	"fmt"

	"github.com/focusdeck/internal/db"
	"gorm.io/gorm"
)

// ErrMetricNotFound 在指定刷题专题不存在时返回
var ErrMetricNotFound = errors.New("leetcode metric not found")

// LeetCodeService 负责刷题进度统计
// 专题集合由 seedctl 离线维护，线上仅更新已解题数
type LeetCodeService struct {
	db *gorm.DB
}

// NewLeetCodeService 构造 LeetCodeService
func NewLeetCodeService(gdb *gorm.DB) *LeetCodeService {
	return &LeetCodeService{db: gdb}
}

// ListMetrics 返回全部专题，按名称排序
func (s *LeetCodeService) ListMetrics() ([]db.LeetcodeMetric, error) {
	var metrics []db.LeetcodeMetric
	if err := s.db.Order("topic_name ASC").Find(&metrics).Error; err != nil {
		return nil, fmt.Errorf("list leetcode metrics: %w", err)
	}
	return metrics, nil
}

// UpdateSolved 更新专题的已解题数，输入钳制到 [0, TotalProblems]
func (s *LeetCodeService) UpdateSolved(metricID string, solved float64) (*db.LeetcodeMetric, error) {
	var metric db.LeetcodeMetric
	if err := s.db.First(&metric, "id = ?", metricID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricNotFound
		}
		return nil, fmt.Errorf("find leetcode metric: %w", err)
	}

	metric.SolvedProblems = clampToRange(solved, metric.TotalProblems)

	if err := s.db.Save(&metric).Error; err != nil {
		return nil, fmt.Errorf("update leetcode metric: %w", err)
	}
	return &metric, nil
}
