package db

import (
	"fmt"
	"gameforge/internal/config"
	"gameforge/internal/models"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Open 按配置连接数据库并完成迁移与初始数据写入
func Open(cfg config.DatabaseConfig, schedulerInterval time.Duration) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("Database connection established (%s)", dialectName(cfg.Driver))

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// sqlite 只允许单写者，共享一个连接避免 database is locked
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(conn); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := SeedStats(conn, time.Now(), schedulerInterval); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate 创建 games / game_votes / generation_stats 三张表
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Game{},
		&models.Vote{},
		&models.GenerationStats{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed")
	return nil
}

// SeedStats 保证 generation_stats 恰好有一行。
// 固定主键 + ON CONFLICT DO NOTHING，serve 与 tick 同时启动也不会插入两行
func SeedStats(conn *gorm.DB, now time.Time, interval time.Duration) error {
	var existing int64
	if err := conn.Model(&models.GenerationStats{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to read generation stats: %w", err)
	}
	if existing > 0 {
		return nil
	}

	stats := models.GenerationStats{
		ID:                 models.GenerationStatsID,
		NextAutoGeneration: now.Add(interval).UTC(),
	}
	res := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&stats)
	if res.Error != nil {
		return fmt.Errorf("failed to seed generation stats: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}
	log.Printf("Generation stats seeded, first auto generation at %s", stats.NextAutoGeneration.Format(time.RFC3339))
	return nil
}

func dialectName(driver string) string {
	if driver == "" {
		return "postgres"
	}
	return driver
}
