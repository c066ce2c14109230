package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdownV1(t *testing.T) {
	got, err := EscapeMarkdown("Pen_blue *new* [x]", MarkdownV1)
	require.NoError(t, err)
	assert.Equal(t, `Pen\_blue \*new\* \[x]`, got)
}

func TestEscapeMarkdownV2(t *testing.T) {
	got, err := EscapeMarkdown("1.50 (sale)!", MarkdownV2)
	require.NoError(t, err)
	assert.Equal(t, `1\.50 \(sale\)\!`, got)
}

func TestEscapeMarkdownUnsupported(t *testing.T) {
	_, err := EscapeMarkdown("x", 3)
	assert.Error(t, err)
}

func TestEscapeByParseMode(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp;", Escape("a <b> &", "HTML"))
	assert.Equal(t, `a\_b`, Escape("a_b", "Markdown"))
	assert.Equal(t, "a_b", Escape("a_b", ""))
}

func TestDerefString(t *testing.T) {
	s := "Blue ink"
	empty := ""
	assert.Equal(t, "Blue ink", DerefString(&s, "-"))
	assert.Equal(t, "-", DerefString(&empty, "-"))
	assert.Equal(t, "-", DerefString(nil, "-"))
}
