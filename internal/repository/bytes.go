package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asklio/procurement/internal/common"
)

// DecodeStoredBytes resolves the stored document payload to one canonical
// byte slice. Depending on driver version and write path the value comes
// back as a contiguous byte slice, a BSON binary wrapper, or a raw numeric
// sequence from legacy writes. The ambiguity is contained here: everything
// above this function sees []byte or an explicit unreadable-document error.
func DecodeStoredBytes(v any) ([]byte, error) {
	switch data := v.(type) {
	case []byte:
		return data, nil
	case primitive.Binary:
		return data.Data, nil
	case []any:
		out := make([]byte, len(data))
		for i, el := range data {
			n, ok := numericByte(el)
			if !ok {
				return nil, common.NewAppError("UNREADABLE_DOCUMENT",
					fmt.Sprintf("byte sequence element %d has type %T", i, el), common.ErrUnreadableDocument)
			}
			out[i] = n
		}
		return out, nil
	case nil:
		return nil, common.NewAppError("UNREADABLE_DOCUMENT", "stored payload is missing", common.ErrUnreadableDocument)
	default:
		return nil, common.NewAppError("UNREADABLE_DOCUMENT",
			fmt.Sprintf("stored payload has type %T", v), common.ErrUnreadableDocument)
	}
}

func numericByte(el any) (byte, bool) {
	var n int64
	switch t := el.(type) {
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		n = int64(t)
	case int32:
		n = int64(t)
	case int64:
		n = t
	default:
		return 0, false
	}
	if n < 0 || n > 255 {
		return 0, false
	}
	return byte(n), true
}
