package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"
	"marketplace-backend/internal/domains/product/repository"

	"github.com/xuri/excelize/v2"
)

const (
	exportPageSize = 100
	maxExportRows  = 10000
	exportSheet    = "Products"
)

var exportHeaders = []string{
	"ID", "Seller ID", "Category", "Category Slug", "Title", "Status",
	"Price", "Old Price", "Currency", "Stock", "SKU", "Tags",
	"Promotion", "Promotion End", "Featured", "Rank Score", "Shuffle Key", "Created At",
}

// Export - Ghi listing của scope ra file xlsx theo đúng thứ tự listing.
// Đi qua từng trang bằng cursor, tối đa maxExportRows dòng.
func (s *ProductService) Export(ctx context.Context, scope repository.Scope, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	if headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	rows := 0
	var after *ranking.Cursor
	for rows < maxExportRows {
		page, err := s.repo.List(ctx, repository.ListQuery{Scope: scope, After: after, Limit: exportPageSize})
		if err != nil {
			return rows, err
		}
		for i := range page {
			if rows >= maxExportRows {
				break
			}
			if err := writeExportRow(f, rows+2, &page[i]); err != nil {
				return rows, err
			}
			rows++
		}
		if len(page) < exportPageSize {
			break
		}
		c := page[len(page)-1].Cursor()
		after = &c
	}

	if err := f.Write(w); err != nil {
		return rows, fmt.Errorf("write xlsx: %w", err)
	}
	return rows, nil
}

func writeExportRow(f *excelize.File, rowNum int, p *model.Product) error {
	var oldPrice interface{}
	if p.OldPrice != nil {
		oldPrice = p.OldPrice.InexactFloat64()
	}
	var sku interface{}
	if p.SKU != nil {
		sku = *p.SKU
	}
	var promoEnd interface{}
	if p.PromotionEndAt != nil {
		promoEnd = p.PromotionEndAt.UTC().Format("2006-01-02 15:04:05")
	}

	values := []interface{}{
		p.ID.String(), p.SellerID.String(), p.Category.Name, p.Category.Slug, p.Title, string(p.Status),
		p.Price.InexactFloat64(), oldPrice, string(p.Currency), p.StockQty, sku, strings.Join(p.Tags, ", "),
		string(p.PromotionLevel), promoEnd, p.IsFeatured, p.RankScore, int64(p.ShuffleKey),
		p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}

	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
