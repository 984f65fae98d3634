package service

import (
	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/config"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
	"github.com/simoamogit/school-timetable/backend/pkg/jwt"
	"github.com/simoamogit/school-timetable/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Settings     SettingsService
	Grid         GridService
	Note         NoteService
	Substitution SubstitutionService
	Timetable    TimetableService
	Share        ShareService
	Export       ExportService

	recorder *ChangeRecorder
}

// NewService 创建 Service 聚合
// rdb 可为 nil：分享快照缓存随之降级为直读数据库
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	recorder := NewChangeRecorder(repo.ChangeLog, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, logger),
		Settings:     NewSettingsService(repo, logger),
		Grid:         NewGridService(repo, recorder, logger),
		Note:         NewNoteService(repo, recorder, logger),
		Substitution: NewSubstitutionService(repo, recorder, logger),
		Timetable:    NewTimetableService(repo, logger),
		Share:        NewShareService(repo, rdb, logger),
		Export:       NewExportService(repo, logger),
		recorder:     recorder,
	}
}

// Close 冲刷并停止后台变更日志写入
func (s *Service) Close() {
	s.recorder.Close()
}
