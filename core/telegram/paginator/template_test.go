package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateSubstitutesNamedPlaceholders(t *testing.T) {
	tmpl, err := parseTemplate("*Items*\n\n{rows_text}\n_{page_number} of {pages_count}_",
		placeholderRows, placeholderPage, placeholderPages)
	require.NoError(t, err)

	values := pageValues(2, 5)
	values[placeholderRows] = "a\nb\n"
	assert.Equal(t, "*Items*\n\na\nb\n\n_2 of 5_", tmpl.execute(values))
}

func TestParseTemplateEscapedBraces(t *testing.T) {
	tmpl, err := parseTemplate("{{page}} {page_number}}}", placeholderPage)
	require.NoError(t, err)
	assert.Equal(t, "{page} 3}", tmpl.execute(map[string]string{placeholderPage: "3"}))
}

func TestParseTemplateRejectsUnknownOrMalformed(t *testing.T) {
	for _, raw := range []string{
		"{rows_text}",
		"{page}",
		"{page_number",
		"page}",
		"{page_number:02d}",
	} {
		_, err := parseTemplate(raw, placeholderPage, placeholderPages)
		assert.ErrorIs(t, err, ErrInvalidTemplate, raw)
		assert.ErrorIs(t, err, ErrPaginator, raw)
	}
}

func TestParseTemplateWithoutPlaceholders(t *testing.T) {
	tmpl, err := parseTemplate("static", placeholderPage)
	require.NoError(t, err)
	assert.Equal(t, "static", tmpl.execute(nil))

	empty, err := parseTemplate("")
	require.NoError(t, err)
	assert.Empty(t, empty.execute(nil))
}
