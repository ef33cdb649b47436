package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// runExpirySweepOnce deactivates API keys whose expiry is in the past,
// writing one notification per deactivated key.
func runExpirySweepOnce(db *gorm.DB) error {
	now := time.Now()

	var expired []APIKey
	if err := db.Where("active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Find(&expired).Error; err != nil {
		return err
	}

	for _, key := range expired {
		if err := db.Model(&key).Update("active", false).Error; err != nil {
			return err
		}
		Notify(db, LevelWarning, fmt.Sprintf("API key %q (%s) expired and was deactivated", key.Name, key.Provider.Label()))
	}
	return nil
}

// StartExpirySweepWorker launches a background goroutine that runs the
// key expiry sweep once at startup and then once per day.
func StartExpirySweepWorker(db *gorm.DB) {
	go func() {
		if err := runExpirySweepOnce(db); err != nil {
			log.Printf("key expiry sweep error (startup): %v", err)
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := runExpirySweepOnce(db); err != nil {
				log.Printf("key expiry sweep error: %v", err)
			}
		}
	}()
}

// runUsageRollupOnce folds the live counters (API key usage counts,
// assistant token counters) into today's UsageDay row. The counters are
// cumulative, so the delta against everything already recorded is what
// gets added. Negative deltas (counter resets) are clamped to zero.
func runUsageRollupOnce(db *gorm.DB, at time.Time) error {
	var totalRequests int64
	if err := db.Model(&APIKey{}).Select("COALESCE(SUM(usage_count), 0)").Scan(&totalRequests).Error; err != nil {
		return err
	}
	var totalTokens int64
	if err := db.Model(&Assistant{}).Select("COALESCE(SUM(token_count), 0)").Scan(&totalTokens).Error; err != nil {
		return err
	}

	var recordedRequests int64
	if err := db.Model(&UsageDay{}).Select("COALESCE(SUM(requests), 0)").Scan(&recordedRequests).Error; err != nil {
		return err
	}
	var recordedTokens int64
	if err := db.Model(&UsageDay{}).Select("COALESCE(SUM(tokens), 0)").Scan(&recordedTokens).Error; err != nil {
		return err
	}

	reqDelta := totalRequests - recordedRequests
	if reqDelta < 0 {
		reqDelta = 0
	}
	tokDelta := totalTokens - recordedTokens
	if tokDelta < 0 {
		tokDelta = 0
	}
	if reqDelta == 0 && tokDelta == 0 {
		return nil
	}

	day := Day(at)
	costDelta := float64(tokDelta) / 1000 * defaultCostPer1K

	var row UsageDay
	err := db.Where("date = ?", day).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&UsageDay{
			Date:     day,
			Requests: reqDelta,
			Tokens:   tokDelta,
			Cost:     costDelta,
		}).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&row).Updates(map[string]interface{}{
		"requests": row.Requests + reqDelta,
		"tokens":   row.Tokens + tokDelta,
		"cost":     row.Cost + costDelta,
	}).Error
}

// StartUsageRollupWorker runs the usage rollup once at startup and then
// every hour, attributing deltas to the current UTC day.
func StartUsageRollupWorker(db *gorm.DB) {
	go func() {
		if err := runUsageRollupOnce(db, time.Now()); err != nil {
			log.Printf("usage rollup error (startup): %v", err)
		}

		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for t := range ticker.C {
			if err := runUsageRollupOnce(db, t); err != nil {
				log.Printf("usage rollup error: %v", err)
			}
		}
	}()
}
