package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRank(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Minute)

	tests := []struct {
		name     string
		level    PromotionLevel
		endAt    *time.Time
		featured bool
		want     int
	}{
		{"no promotion", PromotionNone, nil, false, 0},
		{"featured only", PromotionNone, nil, true, 5},
		{"active basic", PromotionBasic, &future, false, 10},
		{"active plus", PromotionPlus, &future, false, 20},
		{"active pro featured", PromotionPro, &future, true, 35},
		{"expired pro", PromotionPro, &past, false, 0},
		{"expired pro featured", PromotionPro, &past, true, 5},
		{"tier without end date", PromotionPro, nil, false, 0},
		{"ends exactly now", PromotionPlus, &now, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRank(tt.level, tt.endAt, tt.featured, now))
		})
	}
}

func TestComputeRank_MonotonicInTier(t *testing.T) {
	now := time.Now()
	endAt := now.Add(time.Hour)
	levels := []PromotionLevel{PromotionNone, PromotionBasic, PromotionPlus, PromotionPro}

	for i := 1; i < len(levels); i++ {
		for _, featured := range []bool{false, true} {
			lower := ComputeRank(levels[i-1], &endAt, featured, now)
			higher := ComputeRank(levels[i], &endAt, featured, now)
			assert.Greater(t, higher, lower, "%s should outrank %s", levels[i], levels[i-1])
		}
	}
}

func TestComputeRank_FeaturedBonusIsConstant(t *testing.T) {
	now := time.Now()
	endAt := now.Add(time.Hour)

	for _, level := range []PromotionLevel{PromotionNone, PromotionBasic, PromotionPlus, PromotionPro} {
		diff := ComputeRank(level, &endAt, true, now) - ComputeRank(level, &endAt, false, now)
		assert.Equal(t, FeaturedBonus, diff)
	}
}

func TestPromotionLevel_IsValid(t *testing.T) {
	assert.True(t, PromotionPro.IsValid())
	assert.True(t, PromotionNone.IsValid())
	assert.False(t, PromotionLevel("gold").IsValid())
	assert.Equal(t, 0, PromotionLevel("gold").Weight())
}
