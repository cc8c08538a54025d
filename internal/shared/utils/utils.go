package utils

import (
	"github.com/google/uuid"
)

// ParsePathID - chỉ nhận UUID canonical (36 ký tự), từ chối uuid.Nil.
// uuid.Parse còn nhận dạng {..} và urn:uuid: nên path param cần chặt hơn.
func ParsePathID(raw string) (uuid.UUID, bool) {
	if len(raw) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
