package paginator

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/m3rciful/tgpaginator/core/logger"
	tg "github.com/m3rciful/tgpaginator/core/telegram"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/tgpaginator/core/telegram/helpers"
	"github.com/m3rciful/tgpaginator/core/telegram/keyboard"
	"github.com/m3rciful/tgpaginator/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultExpiredText is shown when a clicked paginator is no longer registered.
const DefaultExpiredText = "This button is no longer active"

// TeleAPI is the subset of the Telebot API used to deliver pages.
type TeleAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TeleMessenger delivers rendered pages through Telebot.
type TeleMessenger struct {
	api TeleAPI
}

// NewTeleMessenger wraps a bot (usually c.Bot()).
func NewTeleMessenger(api TeleAPI) *TeleMessenger {
	return &TeleMessenger{api: api}
}

// Send posts msg to chatID and returns the new message id.
func (t *TeleMessenger) Send(_ context.Context, chatID int64, msg Message) (int, error) {
	sent, err := t.api.Send(tele.ChatID(chatID), msg.Text, sendOptions(msg)...)
	if err != nil {
		return 0, err
	}
	return sent.ID, nil
}

// Edit replaces text and keyboard of an existing message. A message that
// already shows msg counts as edited.
func (t *TeleMessenger) Edit(ctx context.Context, chatID int64, messageID int, msg Message) error {
	target := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	_, err := t.api.Edit(target, msg.Text, sendOptions(msg)...)
	if errors.Is(err, tele.ErrSameMessageContent) {
		logger.Debug(ctx, logComponent, "paginator.unchanged",
			slog.Int64("chat_id", chatID),
			slog.Int("message_id", messageID),
		)
		return nil
	}
	return err
}

func sendOptions(msg Message) []interface{} {
	opts := []interface{}{&tele.SendOptions{
		ParseMode:   tele.ParseMode(msg.ParseMode),
		ReplyMarkup: Markup(msg.Keyboard),
	}}
	if msg.DisablePreview {
		opts = append(opts, tele.NoPreview)
	}
	return opts
}

// Markup converts a Keyboard into a Telebot inline reply markup.
func Markup(kb Keyboard) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(kb))
	for _, r := range kb {
		row := make([]keyboard.InlineBtn, 0, len(r))
		for _, b := range r {
			row = append(row, keyboard.InlineBtn{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, row)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// EventFromCallback extracts the routing fields of a callback query.
// Inline-mode callbacks carry no chat message and are reported as not ok.
func EventFromCallback(cb *tele.Callback) (CallbackEvent, bool) {
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil {
		return CallbackEvent{}, false
	}
	ev := CallbackEvent{
		ChatID:    cb.Message.Chat.ID,
		MessageID: cb.Message.ID,
		Data:      cb.Data,
	}
	if cb.Sender != nil {
		ev.UserID = cb.Sender.ID
	}
	return ev, true
}

// HandlerOptions customises the Telebot handler of a Router.
type HandlerOptions struct {
	// ExpiredText is shown as an alert when the paginator is gone.
	ExpiredText string
}

// Handler adapts Route to Telebot. A missing paginator is answered with an
// alert instead of an error; transport errors are returned to the caller.
func (rt *Router) Handler(opts HandlerOptions) tele.HandlerFunc {
	expired := opts.ExpiredText
	if expired == "" {
		expired = DefaultExpiredText
	}
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		ev, ok := EventFromCallback(c.Callback())
		if !ok {
			return callbacks.Answer(c, &tele.CallbackResponse{Text: expired, ShowAlert: true})
		}
		_, err := rt.Route(ctx, NewTeleMessenger(c.Bot()), ev)
		if errors.Is(err, ErrNotFound) {
			return callbacks.Answer(c, &tele.CallbackResponse{Text: expired, ShowAlert: true})
		}
		if err != nil {
			logger.Error(ctx, logComponent, "paginator.navigate",
				slog.String("status", "fail"),
				slog.Int64("chat_id", ev.ChatID),
				slog.Int("message_id", ev.MessageID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
			return err
		}
		middleware.RecordMessage(c, true)
		return callbacks.Answer(c, nil)
	}
}

// Bind registers the navigation handler and a silent handler for inert
// buttons in the bot callback registry.
func (rt *Router) Bind(reg *tg.Registry, opts HandlerOptions) error {
	if err := reg.RegisterCallback(RouteKey, rt.Handler(opts)); err != nil {
		return err
	}
	return reg.RegisterCallback(NoopKey, func(c tele.Context) error {
		return callbacks.Answer(c, nil)
	})
}
