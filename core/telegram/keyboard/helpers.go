package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes a convenience wrapper for inline button properties.
// When Unique is empty, Data is sent to Telegram verbatim.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// Inline converts the button to a Telebot inline button.
func (b InlineBtn) Inline(markup *tele.ReplyMarkup) tele.InlineButton {
	if b.Unique != "" {
		return *markup.Data(b.Text, b.Unique, b.Data).Inline()
	}
	return tele.InlineButton{Text: b.Text, Data: b.Data}
}

// InlineButtons builds an inline keyboard where each provided button is placed on its own row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	rows := make([][]InlineBtn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []InlineBtn{b})
	}
	return InlineButtonsRows(rows...)
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = btn.Inline(markup)
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}
