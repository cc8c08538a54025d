package ranking

import (
	"hash/fnv"
)

// Salt - Process-wide shuffle salt (PROMO_SALT).
// Đổi salt chỉ ảnh hưởng tới sản phẩm được tạo/rotate sau đó.
type Salt string

// DefaultSalt - Giá trị mặc định khi PROMO_SALT không được set
const DefaultSalt Salt = "default-salt"

// ComputeShuffleKey - FNV-1a 32-bit trên "salt:id".
// Kết quả ổn định giữa các process và các lần deploy cùng salt.
func ComputeShuffleKey(id string, salt Salt) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(string(salt) + ":" + id))
	return h.Sum32()
}
