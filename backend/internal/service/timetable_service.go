package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// changeLogLimit 变更日志检索上限
const changeLogLimit = 60

// TimetableService 聚合读取业务接口
//
// 设计说明：
//   - GetAll 是唯一触发过期清扫的路径：先删除日期早于"今天"的
//     备注与代课记录，再组装响应。清扫失败不阻断读取，但响应仍
//     在内存中过滤过期行，保证返回结果绝不包含刚应被清理的数据。
//   - 日期比较基于 YYYY-MM-DD 日历字符串（该格式下字典序即时间序），
//     而非时间瞬间：日期为今天的记录全天可见。
//   - 四路读取（设置/格子/备注/代课）相互独立，并发执行。
type TimetableService interface {
	GetAll(ctx context.Context, userID uint) (*dto.TimetableResponse, error)
	GetChangeLog(ctx context.Context, userID uint) ([]model.ChangeLogEntry, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger

	now func() time.Time // 测试中可替换
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger, now: time.Now}
}

func (s *timetableService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *timetableService) GetAll(ctx context.Context, userID uint) (*dto.TimetableResponse, error) {
	today := s.today()

	// 过期清扫：读取的副作用，失败只降级不中断
	if err := s.repo.Note.DeleteExpired(ctx, userID, today); err != nil {
		s.logger.Warn("清理过期备注失败", zap.Error(err))
	}
	if err := s.repo.Substitution.DeleteExpired(ctx, userID, today); err != nil {
		s.logger.Warn("清理过期代课记录失败", zap.Error(err))
	}

	var (
		settings *model.UserSettings
		slots    []model.Slot
		notes    []model.Note
		subs     []model.Substitution
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = s.repo.Settings.GetByUser(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = &model.UserSettings{UserID: userID}
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = s.repo.Slot.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = s.repo.Note.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.repo.Substitution.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("聚合读取失败", zap.Error(err))
		return nil, err
	}

	// 清扫降级兜底：无论删除是否成功，响应都不包含过期行
	notes = filterExpiredNotes(notes, today)
	subs = filterExpiredSubs(subs, today)
	if slots == nil {
		slots = []model.Slot{}
	}

	return &dto.TimetableResponse{
		Settings:      toSettingsResponse(settings),
		Slots:         slots,
		Notes:         notes,
		Substitutions: subs,
	}, nil
}

func (s *timetableService) GetChangeLog(ctx context.Context, userID uint) ([]model.ChangeLogEntry, error) {
	entries, err := s.repo.ChangeLog.ListRecent(ctx, userID, changeLogLimit)
	if err != nil {
		s.logger.Error("查询变更日志失败", zap.Error(err))
		return nil, err
	}
	if entries == nil {
		entries = []model.ChangeLogEntry{}
	}
	return entries, nil
}

func filterExpiredNotes(notes []model.Note, today string) []model.Note {
	kept := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if n.NoteDate != nil && *n.NoteDate < today {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

func filterExpiredSubs(subs []model.Substitution, today string) []model.Substitution {
	kept := make([]model.Substitution, 0, len(subs))
	for _, sub := range subs {
		if sub.SubDate < today {
			continue
		}
		kept = append(kept, sub)
	}
	return kept
}
