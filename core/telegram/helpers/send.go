package helpers

import (
	"log/slog"

	"github.com/m3rciful/tgpaginator/core/logger"

	tele "gopkg.in/telebot.v4"
)

func markdownOpts(mode tele.ParseMode, markup []*tele.ReplyMarkup) *tele.SendOptions {
	opts := &tele.SendOptions{ParseMode: mode, DisableWebPagePreview: true}
	if len(markup) > 0 {
		opts.ReplyMarkup = markup[0]
	}
	return opts
}

func logSendError(c tele.Context, action string, err error) error {
	if err != nil {
		logger.LogEvent(BuildContext(c), logger.TG, slog.LevelWarn, "send.fail",
			slog.String("action", action),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
	return err
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	if len(opts) > 0 && opts[0] != nil {
		return logSendError(c, "send.text", c.Send(text, opts[0]))
	}
	return logSendError(c, "send.text", c.Send(text))
}

// SendMD sends a Markdown message with an optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return logSendError(c, "send.md", c.Send(text, markdownOpts(tele.ModeMarkdown, markup)))
}

// EditMD edits the callback message as Markdown with an optional reply markup.
func EditMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return logSendError(c, "edit.md", c.Edit(text, markdownOpts(tele.ModeMarkdown, markup)))
}
