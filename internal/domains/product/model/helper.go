package model

import (
	"fmt"
)

const (
	// ListCachePrefix - Prefix của mọi listing page cache key; mutation xoá theo pattern
	ListCachePrefix = "products:list"
	// ListGenerationKey - Token thế hệ của listing cache, đổi mỗi lần mutation.
	// Không nằm dưới ListCachePrefix nên DeletePattern không xoá nó.
	ListGenerationKey = "products:listgen"
	// InitialListGeneration - Dùng khi chưa có mutation nào ghi token
	InitialListGeneration = "0"

	firstPageToken = "first"
)

// GenerateListCacheKey - Key cho 1 trang listing: generation + scope + limit + cursor.
// Cursor (base64url) giữ nguyên trong key nên 2 cursor khác nhau không bao giờ chung key.
func GenerateListCacheKey(generation, scope, cursor string, limit int) string {
	if cursor == "" {
		cursor = firstPageToken
	}
	return fmt.Sprintf("%s:%s:%s:%d:%s", ListCachePrefix, generation, scope, limit, cursor)
}

// ListCachePattern - Pattern cho DeletePattern
func ListCachePattern() string {
	return ListCachePrefix + ":*"
}
