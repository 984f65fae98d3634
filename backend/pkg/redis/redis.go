package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/config"
)

// Client Redis 客户端封装
// 当前用于分享视图快照缓存与登录限流；调用方持有 nil 时全部降级
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 分享快照缓存 ──
//
// 分享视图是可接受陈旧数据的"最后计算状态"投影，
// 因此用短 TTL 缓存整段 JSON，撤销分享时删除。

const sharePrefix = "share:snapshot:"

// SetShareSnapshot 缓存分享快照 JSON
func (c *Client) SetShareSnapshot(ctx context.Context, token string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, sharePrefix+token, payload, ttl).Err()
}

// GetShareSnapshot 读取分享快照 JSON，未命中返回 (nil, nil)
func (c *Client) GetShareSnapshot(ctx context.Context, token string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, sharePrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// DeleteShareSnapshot 删除分享快照缓存（撤销分享时调用）
func (c *Client) DeleteShareSnapshot(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sharePrefix+token).Err()
}

// ── 登录限流 ──

const rateLimitPrefix = "rate_limit:"

// CheckRateLimit 固定窗口计数限流，窗口内超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	full := rateLimitPrefix + key
	n, err := c.rdb.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, full, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
