package ranking

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
)

const cursorVersion = 1

// Cursor - Vị trí của item cuối cùng trên trang trước, theo thứ tự
// (rank DESC, shuffle DESC, id DESC)
type Cursor struct {
	Rank       int
	ShuffleKey uint32
	ID         uuid.UUID
}

// cursorPayload - JSON shape trên wire. Field ngắn để cursor gọn trên URL.
type cursorPayload struct {
	V  int    `json:"v"`
	R  *int   `json:"r"`
	S  *int64 `json:"s"`
	ID string `json:"id"`
}

// EncodeCursor - base64url(JSON{v,r,s,id}), không padding
func EncodeCursor(c Cursor) string {
	r := c.Rank
	s := int64(c.ShuffleKey)
	raw, _ := json.Marshal(cursorPayload{
		V:  cursorVersion,
		R:  &r,
		S:  &s,
		ID: c.ID.String(),
	})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor - Trả về nil cho mọi input không hợp lệ (rỗng, sai base64, sai JSON,
// thiếu field, sai version, shuffle ngoài uint32, id không phải UUID).
// nil nghĩa là "bắt đầu từ trang đầu"; hàm này không bao giờ trả lỗi.
func DecodeCursor(token string) *Cursor {
	if token == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	if p.V != cursorVersion || p.R == nil || p.S == nil {
		return nil
	}
	if *p.S < 0 || *p.S > int64(^uint32(0)) {
		return nil
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil
	}

	return &Cursor{
		Rank:       *p.R,
		ShuffleKey: uint32(*p.S),
		ID:         id,
	}
}

// After - true nếu item (rank, shuffle, id) nằm sau cursor theo thứ tự listing.
// Predicate giống hệt mệnh đề seek trong SQL của repository.
func (c Cursor) After(rank int, shuffle uint32, id uuid.UUID) bool {
	if rank != c.Rank {
		return rank < c.Rank
	}
	if shuffle != c.ShuffleKey {
		return shuffle < c.ShuffleKey
	}
	return CompareIDs(id, c.ID) < 0
}

// CompareIDs - So sánh bytewise, khớp với thứ tự uuid của PostgreSQL
func CompareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Less - Thứ tự listing: item a đứng trước b
func Less(aRank int, aShuffle uint32, aID uuid.UUID, bRank int, bShuffle uint32, bID uuid.UUID) bool {
	if aRank != bRank {
		return aRank > bRank
	}
	if aShuffle != bShuffle {
		return aShuffle > bShuffle
	}
	return CompareIDs(aID, bID) > 0
}
