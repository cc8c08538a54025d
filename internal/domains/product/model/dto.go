package model

import (
	"encoding/json"
	"errors"
	"time"

	"marketplace-backend/internal/domains/product/ranking"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ===== LISTING =====

// ListResult - Một trang listing. NextCursor rỗng nghĩa là hết dữ liệu.
type ListResult struct {
	Items      []Product `json:"items"`
	NextCursor *string   `json:"next_cursor"`
}

// ===== CREATE =====

// CreateProductRequest - POST /api/v1/products
type CreateProductRequest struct {
	SellerID    *string          `json:"seller_id"`
	CategoryID  string           `json:"category_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Images      []string         `json:"images"`
	Tags        []string         `json:"tags"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price"`
	Currency    string           `json:"currency"`
	StockQty    int              `json:"stock_qty"`
	SKU         *string          `json:"sku"`

	Status         *string    `json:"status"`
	PromotionLevel *string    `json:"promotion_level"`
	PromotionEndAt *time.Time `json:"promotion_end_at"`
	IsFeatured     *bool      `json:"is_featured"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SellerID, validation.When(r.SellerID != nil, is.UUID.Error("seller_id must be a UUID"))),
		validation.Field(&r.CategoryID,
			validation.Required.Error("category_id is required"),
			is.UUID.Error("category_id must be a UUID"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be 1-200 characters"),
		),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Images, validation.Length(0, 10).Error("at most 10 images")),
		validation.Field(&r.Tags, validation.Length(0, 20).Error("at most 20 tags")),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&r.OldPrice, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Currency, validation.In(currencies()...).Error("currency must be RUB, EUR or USD")),
		validation.Field(&r.StockQty, validation.Min(0).Error("stock_qty must be >= 0")),
		validation.Field(&r.SKU, validation.When(r.SKU != nil, validation.Length(1, 64))),
		validation.Field(&r.Status, validation.When(r.Status != nil, validation.In(statuses()...).Error("unknown status"))),
		validation.Field(&r.PromotionLevel, validation.When(r.PromotionLevel != nil, validation.In(promotionLevels()...).Error("unknown promotion level"))),
	)
}

// ===== UPDATE =====

// UpdateProductRequest - PATCH /api/v1/products/:id. Field nil = giữ nguyên.
// Không có seller_id: owner cố định sau khi tạo, body gửi seller_id bị bỏ qua.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Images      *[]string        `json:"images"`
	Tags        *[]string        `json:"tags"`
	Price       *decimal.Decimal `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price"`
	Currency    *string          `json:"currency"`
	StockQty    *int             `json:"stock_qty"`
	SKU         *string          `json:"sku"`

	Status         *string      `json:"status"`
	PromotionLevel *string      `json:"promotion_level"`
	PromotionEndAt NullableTime `json:"promotion_end_at"` // null => bỏ ngày kết thúc
	IsFeatured     *bool        `json:"is_featured"`

	// RotateShuffle - Tính lại shuffle key với salt hiện tại
	RotateShuffle bool `json:"rotate_shuffle"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.When(r.CategoryID != nil, is.UUID.Error("category_id must be a UUID"))),
		validation.Field(&r.Title, validation.When(r.Title != nil,
			validation.Required.Error("title cannot be empty"),
			validation.Length(1, 200),
		)),
		validation.Field(&r.Description, validation.When(r.Description != nil, validation.Length(0, 5000))),
		validation.Field(&r.Images, validation.When(r.Images != nil, validation.By(maxItems(10)))),
		validation.Field(&r.Tags, validation.When(r.Tags != nil, validation.By(maxItems(20)))),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&r.OldPrice, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Currency, validation.When(r.Currency != nil, validation.In(currencies()...).Error("currency must be RUB, EUR or USD"))),
		validation.Field(&r.StockQty, validation.When(r.StockQty != nil, validation.Min(0))),
		validation.Field(&r.SKU, validation.When(r.SKU != nil, validation.Length(1, 64))),
		validation.Field(&r.Status, validation.When(r.Status != nil, validation.In(statuses()...).Error("unknown status"))),
		validation.Field(&r.PromotionLevel, validation.When(r.PromotionLevel != nil, validation.In(promotionLevels()...).Error("unknown promotion level"))),
	)
}

// NullableTime - Phân biệt field vắng mặt (Set=false) với null tường minh (Set=true, Value=nil)
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// SetTime - giá trị cụ thể
func SetTime(t time.Time) NullableTime {
	return NullableTime{Set: true, Value: &t}
}

// ClearTime - null tường minh
func ClearTime() NullableTime {
	return NullableTime{Set: true}
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

// ===== helpers =====

func nonNegativeDecimal(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return errors.New("must be >= 0")
	}
	return nil
}

func maxItems(n int) validation.RuleFunc {
	return func(value interface{}) error {
		if v, ok := value.(*[]string); ok && v != nil && len(*v) > n {
			return errors.New("too many items")
		}
		return nil
	}
}

func currencies() []interface{} {
	return []interface{}{string(CurrencyRUB), string(CurrencyEUR), string(CurrencyUSD)}
}

func statuses() []interface{} {
	return []interface{}{string(StatusDraft), string(StatusActive), string(StatusArchived)}
}

func promotionLevels() []interface{} {
	out := make([]interface{}, 0, 4)
	for _, l := range ranking.PromotionLevels() {
		out = append(out, string(l))
	}
	return out
}
