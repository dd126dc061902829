package service

import (
	"fmt"
	"time"

	"github.com/focusdeck/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityService 维护每日活跃台账并计算连胜
// 台账只增不删：每完成一次任务打一笔当日记录，date 唯一索引保证幂等
type ActivityService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewActivityService 构造 ActivityService。
// loc 决定“今天”的零点界限，传 nil 时跟随进程本地时区。
func NewActivityService(gdb *gorm.DB, loc *time.Location) *ActivityService {
	if loc == nil {
		loc = time.Local
	}
	return &ActivityService{db: gdb, loc: loc, now: time.Now}
}

// MarkToday 为今天补一笔活跃记录，同日重复调用只保留一条。
// 并发同日插入依赖 date 唯一索引，冲突按成功处理。
func (s *ActivityService) MarkToday() (*db.ActivityLog, error) {
	today := s.today()

	entry := db.ActivityLog{Date: today}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("mark activity: %w", err)
	}

	// 冲突时 Create 不回填既有记录，重新读取保证返回权威数据
	var record db.ActivityLog
	if err := s.db.Where("date = ?", today).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload activity: %w", err)
	}

	return &record, nil
}

// CurrentStreak 返回截至今天（或昨天）的连续活跃天数
func (s *ActivityService) CurrentStreak() (int, error) {
	var entries []db.ActivityLog
	if err := s.db.Order("date DESC").Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("list activity: %w", err)
	}

	return streakFrom(s.today(), entries), nil
}

// Range 返回指定日期区间内的活跃记录，升序
func (s *ActivityService) Range(start, end time.Time) ([]db.ActivityLog, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	normalizedStart := normalizeToDate(start.In(s.loc))
	normalizedEnd := normalizeToDate(end.In(s.loc))

	var entries []db.ActivityLog
	if err := s.db.Where("date BETWEEN ? AND ?", normalizedStart, normalizedEnd).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list activity range: %w", err)
	}

	return entries, nil
}

// Today 返回服务时区下的今日零点
func (s *ActivityService) Today() time.Time {
	return s.today()
}

func (s *ActivityService) today() time.Time {
	return normalizeToDate(s.now().In(s.loc))
}

// streakFrom 按日期倒序遍历台账，从 today 回溯连续活跃天数。
// 首条记录允许落在今天或昨天（今天可能还没打点），
// 此后每条必须与上一条精确衔接，一旦出现空档立即截断。
func streakFrom(today time.Time, entries []db.ActivityLog) int {
	streak := 0
	checkDate := today

	for _, entry := range entries {
		diff := int(checkDate.Sub(entry.Date).Hours() / 24)
		if diff != 0 && diff != 1 {
			break
		}
		streak++
		checkDate = entry.Date
	}

	return streak
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
