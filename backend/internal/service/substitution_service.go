package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// ErrInvalidHourRange hour_to 早于 hour 的倒置区间在写入口即被拒绝
var ErrInvalidHourRange = errors.New("结束课时不能早于开始课时")

// SubstitutionService 代课记录业务接口
//
// 覆盖层裁决（某格子当前由哪条代课记录生效）统一走
// model.ActiveSubstitution，整表/单日/分享视图共享同一规则。
type SubstitutionService interface {
	List(ctx context.Context, userID uint) ([]model.Substitution, error)
	Create(ctx context.Context, userID uint, req *dto.CreateSubstitutionRequest) (*dto.IDResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type substitutionService struct {
	repo     *repository.Repository
	recorder *ChangeRecorder
	logger   *zap.Logger
}

// NewSubstitutionService 创建 SubstitutionService 实例
func NewSubstitutionService(repo *repository.Repository, recorder *ChangeRecorder, logger *zap.Logger) SubstitutionService {
	return &substitutionService{repo: repo, recorder: recorder, logger: logger}
}

func (s *substitutionService) List(ctx context.Context, userID uint) ([]model.Substitution, error) {
	subs, err := s.repo.Substitution.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询代课记录失败", zap.Error(err))
		return nil, err
	}
	return subs, nil
}

func (s *substitutionService) Create(ctx context.Context, userID uint, req *dto.CreateSubstitutionRequest) (*dto.IDResponse, error) {
	if model.DayIndex(req.Day) < 0 {
		return nil, ErrUnknownDay
	}

	// hour_to 缺省为单小时代课
	hourTo := req.Hour
	if req.HourTo != nil {
		hourTo = *req.HourTo
	}
	if hourTo < req.Hour {
		return nil, ErrInvalidHourRange
	}

	sub := model.Substitution{
		UserID:     userID,
		Day:        req.Day,
		Hour:       req.Hour,
		HourTo:     hourTo,
		Substitute: req.Substitute,
		SubDate:    req.SubDate,
		Note:       req.Note,
	}
	if err := s.repo.Substitution.Create(ctx, &sub); err != nil {
		s.logger.Error("创建代课记录失败", zap.Error(err))
		return nil, err
	}

	s.recorder.Record(userID, model.ActionSubAdded, map[string]interface{}{
		"day":        req.Day,
		"hour":       req.Hour,
		"substitute": req.Substitute,
		"sub_date":   req.SubDate,
	})

	return &dto.IDResponse{ID: sub.ID}, nil
}

func (s *substitutionService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Substitution.DeleteByID(ctx, userID, id); err != nil {
		s.logger.Error("删除代课记录失败", zap.Error(err))
		return err
	}
	return nil
}
