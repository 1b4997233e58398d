package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/config"
)

// Client Redis 클라이언트 래퍼
// 토큰 블랙리스트, 속도 제한, 직급 체계 캐시에 사용한다.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 연결 생성 및 Ping 헬스체크
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	logger.Info("Redis 연결 성공", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close Redis 연결 종료
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── 토큰 블랙리스트 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID 를 블랙리스트에 추가. TTL 은 토큰 잔여 유효기간과 같게 준다.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 이미 만료된 토큰
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID 가 블랙리스트에 있는지 확인
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 속도 제한 ──

// CheckRateLimit 고정 윈도우 카운터 기반 속도 제한.
// 윈도우 내 요청 수가 limit 이하면 true 를 반환한다.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── 직급 체계 캐시 ──

const (
	positionLevelsKey = "org:position_levels"
	positionLevelsTTL = 10 * time.Minute
)

// GetPositionLevels 직급 라벨→레벨 맵 캐시 조회. 미스/역직렬화 실패/장애는 (nil, false).
func (c *Client) GetPositionLevels(ctx context.Context) (map[string]int, bool) {
	data, err := c.rdb.Get(ctx, positionLevelsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		c.logger.Warn("직급 캐시 역직렬화 실패", zap.Error(err))
		return nil, false
	}
	return m, true
}

// SetPositionLevels 직급 라벨→레벨 맵 캐시 저장
func (c *Client) SetPositionLevels(ctx context.Context, m map[string]int) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, positionLevelsKey, data, positionLevelsTTL).Err()
}

// InvalidatePositionLevels 직급 캐시 무효화 (직급 체계 변경 시 호출)
func (c *Client) InvalidatePositionLevels(ctx context.Context) error {
	return c.rdb.Del(ctx, positionLevelsKey).Err()
}
