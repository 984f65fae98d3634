package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// ── 网格模块业务错误 ──

var (
	ErrUnknownDay = errors.New("星期名称不在固定词表中")
	ErrSwapFailed = errors.New("交换失败")
)

// 变更日志中空格子的占位文案（与前端展示约定一致）
const emptySubjectLabel = "(vuoto)"

// GridService 课表格子业务接口
//
// 设计说明：
//   - Upsert 依赖 (user, day, hour) 唯一约束做覆盖写：任何 upsert 序列
//     之后每个格子至多一行。
//   - 写入前先读旧值做差异判断，决定变更日志的动作类型；
//     内容未变化时不记日志，保证审计流有信息量。
//   - Swap 的四次潜在写入在仓储层的单个事务中完成，任一失败全部回滚，
//     网格绝不会停留在"一侧已移动另一侧没动"的状态。
type GridService interface {
	List(ctx context.Context, userID uint) ([]model.Slot, error)
	Upsert(ctx context.Context, userID uint, req *dto.UpsertSlotRequest) error
	Delete(ctx context.Context, userID uint, day string, hour int) error
	// Swap 交换两个格子的内容；from == to 时为显式空操作
	Swap(ctx context.Context, userID uint, req *dto.SwapRequest) error
}

type gridService struct {
	repo     *repository.Repository
	recorder *ChangeRecorder
	logger   *zap.Logger
}

// NewGridService 创建 GridService 实例
func NewGridService(repo *repository.Repository, recorder *ChangeRecorder, logger *zap.Logger) GridService {
	return &gridService{repo: repo, recorder: recorder, logger: logger}
}

func (s *gridService) List(ctx context.Context, userID uint) ([]model.Slot, error) {
	slots, err := s.repo.Slot.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询格子失败", zap.Error(err))
		return nil, err
	}
	return slots, nil
}

func (s *gridService) Upsert(ctx context.Context, userID uint, req *dto.UpsertSlotRequest) error {
	if model.DayIndex(req.Day) < 0 {
		return ErrUnknownDay
	}

	slotType := req.SlotType
	if slotType == "" {
		slotType = model.SlotTypeSubject
	}
	color := req.Color
	if color == "" {
		color = model.DefaultAvatarColor
	}

	cell := repository.Cell{Day: req.Day, Hour: req.Hour}

	// 先读旧值：差异决定审计动作（无变化则不记）
	old, err := s.repo.Slot.GetByCell(ctx, userID, cell)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("读取格子旧值失败", zap.Error(err))
		return err
	}

	slot := model.Slot{
		UserID:   userID,
		Day:      req.Day,
		Hour:     req.Hour,
		Subject:  req.Subject,
		Color:    color,
		SlotType: slotType,
	}
	if err := s.repo.Slot.Upsert(ctx, &slot); err != nil {
		s.logger.Error("写入格子失败", zap.Error(err))
		return err
	}

	s.recordUpsert(userID, req, old, slotType)
	return nil
}

// recordUpsert 根据新旧值差异生成变更日志（尽力而为）
func (s *gridService) recordUpsert(userID uint, req *dto.UpsertSlotRequest, old *model.Slot, slotType string) {
	oldSubject := ""
	oldType := ""
	if old != nil {
		oldSubject = old.Subject
		oldType = old.SlotType
	}

	switch {
	case slotType == model.SlotTypeFree && oldType != model.SlotTypeFree:
		s.recorder.Record(userID, model.ActionSlotFree, map[string]interface{}{
			"day":     req.Day,
			"hour":    req.Hour,
			"subject": oldSubject,
		})
	case oldSubject != req.Subject:
		from := oldSubject
		if from == "" {
			from = emptySubjectLabel
		}
		to := req.Subject
		if to == "" {
			to = emptySubjectLabel
		}
		s.recorder.Record(userID, model.ActionSlotChanged, map[string]interface{}{
			"day":  req.Day,
			"hour": req.Hour,
			"from": from,
			"to":   to,
		})
	}
}

func (s *gridService) Delete(ctx context.Context, userID uint, day string, hour int) error {
	if err := s.repo.Slot.DeleteByCell(ctx, userID, repository.Cell{Day: day, Hour: hour}); err != nil {
		s.logger.Error("删除格子失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *gridService) Swap(ctx context.Context, userID uint, req *dto.SwapRequest) error {
	if model.DayIndex(req.From.Day) < 0 || model.DayIndex(req.To.Day) < 0 {
		return ErrUnknownDay
	}

	from := repository.Cell{Day: req.From.Day, Hour: req.From.Hour}
	to := repository.Cell{Day: req.To.Day, Hour: req.To.Hour}

	// 同一格子：显式空操作
	if from == to {
		return nil
	}

	prevFrom, prevTo, err := s.repo.Slot.SwapCells(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("交换格子失败", zap.Error(err))
		return ErrSwapFailed
	}

	// 审计在事务边界之外：失败不回滚已提交的交换
	fromSubject, toSubject := "", ""
	if prevFrom != nil {
		fromSubject = prevFrom.Subject
	}
	if prevTo != nil {
		toSubject = prevTo.Subject
	}
	s.recorder.Record(userID, model.ActionSlotSwapped, map[string]interface{}{
		"from": map[string]interface{}{"day": from.Day, "hour": from.Hour, "subject": fromSubject},
		"to":   map[string]interface{}{"day": to.Day, "hour": to.Hour, "subject": toSubject},
	})
	return nil
}
