package format

import (
	"fmt"
	"strings"
)

const (
	// MarkdownV1 denotes Telegram legacy Markdown.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram MarkdownV2.
	MarkdownV2 = 2
)

var (
	mdV1Replacer = newEscaper("_*`[")
	mdV2Replacer = newEscaper("_*[]()~`>#+-=|{}.!\\")
	htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

func newEscaper(specials string) *strings.Replacer {
	pairs := make([]string, 0, len(specials)*2)
	for _, r := range specials {
		pairs = append(pairs, string(r), `\`+string(r))
	}
	return strings.NewReplacer(pairs...)
}

// EscapeMarkdown escapes special characters for Markdown version 1 or 2.
func EscapeMarkdown(text string, version int) (string, error) {
	switch version {
	case MarkdownV1:
		return mdV1Replacer.Replace(text), nil
	case MarkdownV2:
		return mdV2Replacer.Replace(text), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}

// Escape escapes text for a Telegram parse mode ("Markdown", "MarkdownV2",
// "HTML"). Unknown or empty modes return text unchanged.
func Escape(text, parseMode string) string {
	switch parseMode {
	case "Markdown":
		return mdV1Replacer.Replace(text)
	case "MarkdownV2":
		return mdV2Replacer.Replace(text)
	case "HTML":
		return htmlReplacer.Replace(text)
	}
	return text
}
