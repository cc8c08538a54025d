package ranking

import "time"

// PromotionLevel - Paid promotion tier, ordered none < basic < plus < pro
type PromotionLevel string

const (
	PromotionNone  PromotionLevel = "none"
	PromotionBasic PromotionLevel = "basic"
	PromotionPlus  PromotionLevel = "plus"
	PromotionPro   PromotionLevel = "pro"
)

// FeaturedBonus - Điểm cộng cho sản phẩm featured, không phụ thuộc promotion
const FeaturedBonus = 5

var promotionWeights = map[PromotionLevel]int{
	PromotionNone:  0,
	PromotionBasic: 10,
	PromotionPlus:  20,
	PromotionPro:   30,
}

// PromotionLevels - Tất cả tier hợp lệ (dùng cho validation)
func PromotionLevels() []PromotionLevel {
	return []PromotionLevel{PromotionNone, PromotionBasic, PromotionPlus, PromotionPro}
}

// IsValid - Kiểm tra tier có nằm trong tập đã biết không
func (l PromotionLevel) IsValid() bool {
	_, ok := promotionWeights[l]
	return ok
}

// Weight - Trọng số của tier. Tier lạ coi như none.
func (l PromotionLevel) Weight() int {
	return promotionWeights[l]
}

// PromotionActive - Promotion chỉ có hiệu lực khi có endAt và now < endAt
func PromotionActive(endAt *time.Time, now time.Time) bool {
	return endAt != nil && now.Before(*endAt)
}

// ComputeRank - Tính rank score tại thời điểm now.
// Promotion hết hạn (hoặc không có endAt) đóng góp 0; featured luôn cộng FeaturedBonus.
func ComputeRank(level PromotionLevel, endAt *time.Time, featured bool, now time.Time) int {
	score := 0
	if PromotionActive(endAt, now) {
		score += level.Weight()
	}
	if featured {
		score += FeaturedBonus
	}
	return score
}
