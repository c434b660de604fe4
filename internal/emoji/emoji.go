package emoji

import (
	"sync/atomic"

	"github.com/yildizm/PneumoDetect/internal/toast"
)

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"lungs":      {"🫁", "[XR]"},
	"pneumonia":  {"🔴", "[PNA]"},
	"normal":     {"🟢", "[NRM]"},
	"history":    {"🕘", "[HIS]"},
	"guide":      {"📖", "[?]"},
	"home":       {"🏠", "[H]"},
	"upload":     {"📤", "[UP]"},
	"analyzing":  {"🔬", "[..]"},
	"statistics": {"📊", "[STATS]"},
	"search":     {"🔍", "[/]"},
	"filter":     {"🏷️", "[F]"},
	"download":   {"💾", "[DL]"},
	"watch":      {"👀", "[W]"},
	"server":     {"🖥️", "[SRV]"},
	"door":       {"🚪", "[EXIT]"},
	"target":     {"🎯", "[>]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForToast returns the symbol for a notification type
func ForToast(t toast.Type) string {
	switch t {
	case toast.TypeSuccess:
		return GetEmoji("success")
	case toast.TypeError:
		return GetEmoji("error")
	default:
		return GetEmoji("info")
	}
}

// ForPrediction returns the symbol for a prediction label
func ForPrediction(pneumonia bool) string {
	if pneumonia {
		return GetEmoji("pneumonia")
	}
	return GetEmoji("normal")
}
