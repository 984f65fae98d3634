package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// notePreviewLen 审计详情中内容预览的最大长度
const notePreviewLen = 40

// NoteService 备注业务接口
type NoteService interface {
	List(ctx context.Context, userID uint) ([]model.Note, error)
	Create(ctx context.Context, userID uint, req *dto.CreateNoteRequest) (*dto.IDResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type noteService struct {
	repo     *repository.Repository
	recorder *ChangeRecorder
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo *repository.Repository, recorder *ChangeRecorder, logger *zap.Logger) NoteService {
	return &noteService{repo: repo, recorder: recorder, logger: logger}
}

func (s *noteService) List(ctx context.Context, userID uint) ([]model.Note, error) {
	notes, err := s.repo.Note.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询备注失败", zap.Error(err))
		return nil, err
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, userID uint, req *dto.CreateNoteRequest) (*dto.IDResponse, error) {
	if model.DayIndex(req.Day) < 0 {
		return nil, ErrUnknownDay
	}

	note := model.Note{
		UserID:   userID,
		Day:      req.Day,
		Hour:     req.Hour,
		Content:  req.Content,
		NoteDate: req.NoteDate,
	}
	if err := s.repo.Note.Create(ctx, &note); err != nil {
		s.logger.Error("创建备注失败", zap.Error(err))
		return nil, err
	}

	preview := req.Content
	if len(preview) > notePreviewLen {
		preview = strings.ToValidUTF8(preview[:notePreviewLen], "")
	}
	s.recorder.Record(userID, model.ActionNoteAdded, map[string]interface{}{
		"day":     req.Day,
		"hour":    req.Hour,
		"preview": preview,
	})

	return &dto.IDResponse{ID: note.ID}, nil
}

func (s *noteService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.repo.Note.DeleteByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("删除备注失败", zap.Error(err))
		return err
	}
	// 记录不存在时删除视为幂等成功，也不产生审计条目
	if deleted != nil {
		s.recorder.Record(userID, model.ActionNoteDeleted, map[string]interface{}{
			"day":  deleted.Day,
			"hour": deleted.Hour,
		})
	}
	return nil
}
