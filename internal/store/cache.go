// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"transparency-service/internal/common/database"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/metrics"
	"transparency-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const reportCacheKeyPrefix = "report:"

// ReportCache is a read-through cache of assembled report records keyed by
// reportId. Cache failures are soft; callers fall back to postgres.
type ReportCache struct {
	client *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewReportCache(client *database.RedisClient, ttl time.Duration, log logger.Logger) *ReportCache {
	return &ReportCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "report-cache"}),
	}
}

// Get returns the cached record for reportID, or ok=false on miss or error.
func (c *ReportCache) Get(ctx context.Context, reportID string) (*models.ReportRecord, bool) {
	raw, err := c.client.Get(ctx, reportCacheKeyPrefix+reportID)
	if err == redis.Nil {
		metrics.ReportCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.ReportCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("report cache read failed", map[string]interface{}{
			"reportId": reportID,
			"error":    err.Error(),
		})
		return nil, false
	}

	var record models.ReportRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		metrics.ReportCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("report cache entry corrupt", map[string]interface{}{
			"reportId": reportID,
			"error":    err.Error(),
		})
		return nil, false
	}

	metrics.ReportCacheHits.WithLabelValues("hit").Inc()
	return &record, true
}

// Set stores a record under its reportId. Failures are logged, not returned.
func (c *ReportCache) Set(ctx context.Context, record *models.ReportRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn("report cache marshal failed", map[string]interface{}{
			"reportId": record.ReportID,
			"error":    err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, reportCacheKeyPrefix+record.ReportID, payload, c.ttl); err != nil {
		c.logger.Warn("report cache write failed", map[string]interface{}{
			"reportId": record.ReportID,
			"error":    err.Error(),
		})
	}
}
