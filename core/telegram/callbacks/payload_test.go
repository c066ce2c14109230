package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestEncodeParseData(t *testing.T) {
	data := Encode("open_product", "12")
	assert.Equal(t, "\fopen_product|12", data)

	key, payload := ParseData(data)
	assert.Equal(t, "open_product", key)
	assert.Equal(t, "12", payload)

	key, payload = ParseData(Encode("noop"))
	assert.Equal(t, "noop", key)
	assert.Empty(t, payload)

	key, payload = ParseData("products_1")
	assert.Equal(t, "products_1", key)
	assert.Empty(t, payload)
}

func TestParseCallbackDataPrefersUnique(t *testing.T) {
	key, payload := ParseCallbackData(&tele.Callback{Unique: "k", Data: "p"})
	assert.Equal(t, "k", key)
	assert.Equal(t, "p", payload)

	key, payload = ParseCallbackData(nil)
	assert.Empty(t, key)
	assert.Empty(t, payload)
}

func TestTrailingInt(t *testing.T) {
	n, err := TrailingInt("\fpaginator_open_page|17", "|_")
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	n, err = TrailingInt("paginator_open_page_3", "|_")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = TrailingInt("paginator_open_page|x", "|_")
	assert.Error(t, err)
}
