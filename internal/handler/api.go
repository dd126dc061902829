package handler

import (
	"time"

	"github.com/focusdeck/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	tasks     *service.TaskService
	vault     *service.VaultService
	leetcode  *service.LeetCodeService
	activity  *service.ActivityService
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, loc *time.Location, uploadDir, uploadURL string) *API {
	activityService := service.NewActivityService(db, loc)

	return &API{
		db:        db,
		tasks:     service.NewTaskService(db, activityService),
		vault:     service.NewVaultService(db),
		leetcode:  service.NewLeetCodeService(db),
		activity:  activityService,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
