package model

import (
	"time"

	"marketplace-backend/internal/domains/product/ranking"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Status - Vòng đời sản phẩm: draft -> active -> archived
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// Currency - Tiền tệ niêm yết
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

const DefaultCurrency = CurrencyRUB

// CategorySnapshot - Bản copy {id, name, slug} tại thời điểm ghi.
// Không tự đồng bộ khi category gốc đổi tên.
type CategorySnapshot struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Product - Catalog item được xếp hạng trong listing
type Product struct {
	ID       uuid.UUID        `json:"id"`
	SellerID uuid.UUID        `json:"seller_id"`
	Category CategorySnapshot `json:"category"`

	Title       string           `json:"title"`
	Description string           `json:"description"`
	Images      pq.StringArray   `json:"images"`
	Tags        pq.StringArray   `json:"tags"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	Currency    Currency         `json:"currency"`
	StockQty    int              `json:"stock_qty"`
	SKU         *string          `json:"sku,omitempty"`

	Status    Status     `json:"status"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Ranking inputs
	PromotionLevel ranking.PromotionLevel `json:"promotion_level"`
	PromotionEndAt *time.Time             `json:"promotion_end_at,omitempty"`
	IsFeatured     bool                   `json:"is_featured"`

	// Derived, never set by callers
	RankScore  int    `json:"rank_score"`
	ShuffleKey uint32 `json:"shuffle_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDeleted - Đã soft delete
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// IsPublic - Chỉ sản phẩm active và chưa xoá mới xuất hiện trong listing
func (p *Product) IsPublic() bool {
	return p.Status == StatusActive && !p.IsDeleted()
}

// Rerank - Tính lại rank score từ promotion/featured hiện tại
func (p *Product) Rerank(now time.Time) {
	p.RankScore = ranking.ComputeRank(p.PromotionLevel, p.PromotionEndAt, p.IsFeatured, now)
}

// Reshuffle - Tính lại shuffle key từ id và salt
func (p *Product) Reshuffle(salt ranking.Salt) {
	p.ShuffleKey = ranking.ComputeShuffleKey(p.ID.String(), salt)
}

// Cursor - Vị trí của sản phẩm trong thứ tự listing
func (p *Product) Cursor() ranking.Cursor {
	return ranking.Cursor{Rank: p.RankScore, ShuffleKey: p.ShuffleKey, ID: p.ID}
}

// Clone - Deep copy, dùng bởi in-memory store để caller không sửa được state bên trong
func (p *Product) Clone() *Product {
	cp := *p
	cp.Images = append(pq.StringArray(nil), p.Images...)
	cp.Tags = append(pq.StringArray(nil), p.Tags...)
	if p.OldPrice != nil {
		v := *p.OldPrice
		cp.OldPrice = &v
	}
	if p.SKU != nil {
		v := *p.SKU
		cp.SKU = &v
	}
	if p.DeletedAt != nil {
		v := *p.DeletedAt
		cp.DeletedAt = &v
	}
	if p.PromotionEndAt != nil {
		v := *p.PromotionEndAt
		cp.PromotionEndAt = &v
	}
	return &cp
}
