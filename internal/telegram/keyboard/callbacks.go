package keyboard

import (
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
)

// maxCallbackData is the Telegram limit for inline button payloads.
const maxCallbackData = 64

const callbackSeparator = ":"

// CallbackData is a parsed inline button payload of the form action:value.
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback splits button data. Both parts must be present.
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, callbackSeparator)
	if !ok || action == "" || value == "" {
		return nil, fmt.Errorf("%w: callback data %q", entity.ErrInvalidParameter, data)
	}

	return &CallbackData{Action: action, Value: value}, nil
}

// EncodeCallback joins action and value, truncated to what Telegram accepts.
func EncodeCallback(action, value string) string {
	data := action + callbackSeparator + value
	if len(data) > maxCallbackData {
		data = data[:maxCallbackData]
	}
	return data
}
