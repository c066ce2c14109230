package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsRowsKeepsRawData(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "a", Data: "\fkey|1"}, {Text: "b", Data: "plain"}},
		[]InlineBtn{{Text: "c", Unique: "open", Data: "7"}},
	)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "a", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "\fkey|1", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "plain", markup.InlineKeyboard[0][1].Data)
	assert.Empty(t, markup.InlineKeyboard[0][1].Unique)
	assert.Equal(t, "open", markup.InlineKeyboard[1][0].Unique)
}

func TestInlineButtonsOnePerRow(t *testing.T) {
	markup := InlineButtons([]InlineBtn{{Text: "x", Data: "1"}, {Text: "y", Data: "2"}})
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[1], 1)
	assert.Equal(t, "y", markup.InlineKeyboard[1][0].Text)
}
