package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// ChangeRecorder 变更日志的尽力而为写入器。
//
// 日志写入绝不允许阻塞或拖垮主操作：Record 只做非阻塞入队，
// 后台 goroutine 串行落库，失败仅记 Warn 后丢弃。队列满时直接丢弃该条。
type ChangeRecorder struct {
	repo   repository.ChangeLogRepository
	logger *zap.Logger

	ch   chan model.ChangeLogEntry
	wg   sync.WaitGroup
	once sync.Once
}

const recorderQueueSize = 256

// NewChangeRecorder 创建并启动后台写入协程
func NewChangeRecorder(repo repository.ChangeLogRepository, logger *zap.Logger) *ChangeRecorder {
	r := &ChangeRecorder{
		repo:   repo,
		logger: logger,
		ch:     make(chan model.ChangeLogEntry, recorderQueueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *ChangeRecorder) run() {
	defer r.wg.Done()
	for entry := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.repo.Create(ctx, &entry); err != nil {
			r.logger.Warn("变更日志写入失败",
				zap.Uint("user_id", entry.UserID),
				zap.String("action", entry.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Record 记录一条变更，details 会被序列化为 JSON。
// 序列化失败或队列已满时丢弃该条并记 Warn。
func (r *ChangeRecorder) Record(userID uint, action string, details interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		r.logger.Warn("变更日志序列化失败", zap.String("action", action), zap.Error(err))
		return
	}

	entry := model.ChangeLogEntry{
		UserID:  userID,
		Action:  action,
		Details: payload,
	}

	select {
	case r.ch <- entry:
	default:
		r.logger.Warn("变更日志队列已满，丢弃记录", zap.String("action", action))
	}
}

// Close 关闭队列并等待剩余记录落库
func (r *ChangeRecorder) Close() {
	r.once.Do(func() {
		close(r.ch)
	})
	r.wg.Wait()
}
