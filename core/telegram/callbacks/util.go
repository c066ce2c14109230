package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// PayloadInt64 parses callback payload as int64.
func PayloadInt64(c tele.Context) (int64, error) {
	return strconv.ParseInt(CallbackPayload(c), 10, 64)
}

// PayloadInt parses callback payload as int.
func PayloadInt(c tele.Context) (int, error) {
	return strconv.Atoi(CallbackPayload(c))
}

// TrailingInt returns the integer after the last occurrence of any separator rune in seps.
func TrailingInt(data, seps string) (int, error) {
	idx := strings.LastIndexAny(data, seps)
	return strconv.Atoi(data[idx+1:])
}
