package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// MaxDataLen is the Telegram limit for callback_data in bytes.
const MaxDataLen = 64

const (
	uniquePrefix = "\f"
	payloadSep   = "|"
)

// Encode builds callback data in Telebot's \f<unique>|<payload> form.
// Multiple payload parts are joined with '|'.
func Encode(unique string, payload ...string) string {
	if len(payload) == 0 {
		return uniquePrefix + unique
	}
	return uniquePrefix + unique + payloadSep + strings.Join(payload, payloadSep)
}

// ParseData splits raw callback data into unique key and payload (may be empty).
// Data without the \f marker is treated as a bare key.
func ParseData(raw string) (string, string) {
	raw = strings.TrimPrefix(raw, uniquePrefix)
	parts := strings.SplitN(raw, payloadSep, 2)
	unique := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return unique, payload
}

// ParseCallbackData parses Telebot's \f<unique>|<payload> encoding.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return ParseData(cb.Data)
}

// CallbackKey returns cb.Unique if present; otherwise parses from Data.
func CallbackKey(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// CallbackPayload returns payload (after '|') parsed from Data.
func CallbackPayload(c tele.Context) string {
	_, payload := ParseCallbackData(c.Callback())
	return payload
}

const answeredKey = "cb_answered"

// Answer responds to the callback query once and marks it as answered so the
// callback route does not send a second, empty answer.
func Answer(c tele.Context, resp *tele.CallbackResponse) error {
	c.Set(answeredKey, true)
	if resp == nil {
		return c.Respond()
	}
	return c.Respond(resp)
}

// Answered reports whether Answer was already called for this update.
func Answered(c tele.Context) bool {
	v, _ := c.Get(answeredKey).(bool)
	return v
}
