package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/focusdeck/internal/config"
	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/service"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

// 仪表盘维护工具：初始化刷题专题与知识库条目，查询当前连胜
func main() {
	cmd := &cli.Command{
		Name:  "seedctl",
		Usage: "FocusDeck dashboard maintenance tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "Path to the sqlite database file",
				Sources: cli.EnvVars("DATABASE_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Seed LeetCode topics and knowledge base entries",
				Action: runSeed,
			},
			{
				Name:   "streak",
				Usage:  "Print the current activity streak",
				Action: runStreak,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("seedctl error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openDatabase(cmd *cli.Command) error {
	path := cmd.String("database")
	if path == "" {
		path = config.Load().DatabasePath
	}
	return db.Init(path)
}

func runSeed(_ context.Context, cmd *cli.Command) error {
	if err := openDatabase(cmd); err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	if err := seedLeetcodeMetrics(); err != nil {
		return err
	}
	if err := seedKnowledgeBase(); err != nil {
		return err
	}

	fmt.Println("种子数据写入完成")
	return nil
}

func runStreak(_ context.Context, cmd *cli.Command) error {
	if err := openDatabase(cmd); err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	streak, err := service.NewActivityService(db.DB, nil).CurrentStreak()
	if err != nil {
		return err
	}

	fmt.Printf("当前连胜：%d 天\n", streak)
	return nil
}

// seedLeetcodeMetrics 初始化刷题专题，已存在的专题不重复写入
func seedLeetcodeMetrics() error {
	metrics := []db.LeetcodeMetric{
		{TopicName: "数组与哈希", TotalProblems: 40, DifficultyLevel: "Easy"},
		{TopicName: "双指针", TotalProblems: 25, DifficultyLevel: "Medium"},
		{TopicName: "滑动窗口", TotalProblems: 20, DifficultyLevel: "Medium"},
		{TopicName: "二叉树", TotalProblems: 35, DifficultyLevel: "Medium"},
		{TopicName: "动态规划", TotalProblems: 50, DifficultyLevel: "Hard"},
		{TopicName: "图论", TotalProblems: 30, DifficultyLevel: "Hard"},
	}

	for _, metric := range metrics {
		var count int64
		if err := db.DB.Model(&db.LeetcodeMetric{}).
			Where("topic_name = ?", metric.TopicName).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check metric %s: %w", metric.TopicName, err)
		}
		if count > 0 {
			continue
		}
		if err := db.DB.Create(&metric).Error; err != nil {
			return fmt.Errorf("seed metric %s: %w", metric.TopicName, err)
		}
		fmt.Printf("专题: %s (%d 题)\n", metric.TopicName, metric.TotalProblems)
	}

	return nil
}

// seedKnowledgeBase 初始化知识库条目，按标题去重
func seedKnowledgeBase() error {
	sicpCover := "https://images.unsplash.com/photo-1532012197267-da84d127e765?auto=format&fit=crop&w=800&q=80"
	entries := []db.KnowledgeBase{
		{Title: "SICP 计算机程序的构造和解释", Type: db.KnowledgeTypeBook, Status: "reading", CoverURL: &sicpCover},
		{Title: "Designing Data-Intensive Applications", Type: db.KnowledgeTypeBook, Status: "planned"},
		{Title: "用 eBPF 观测 TCP 重传", Type: db.KnowledgeTypeExperiment, Status: "in_progress"},
		{Title: "SQLite WAL 模式基准测试", Type: db.KnowledgeTypeExperiment, Status: "done", Progress: 100},
	}

	for _, entry := range entries {
		var count int64
		if err := db.DB.Model(&db.KnowledgeBase{}).
			Where("title = ?", entry.Title).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check knowledge %s: %w", entry.Title, err)
		}
		if count > 0 {
			continue
		}
		if err := db.DB.Create(&entry).Error; err != nil {
			return fmt.Errorf("seed knowledge %s: %w", entry.Title, err)
		}
		fmt.Printf("知识库: %s\n", entry.Title)
	}

	return nil
}
