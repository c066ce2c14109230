package paginator

import (
	coreconfig "github.com/m3rciful/tgpaginator/core/config"
)

// Settings holds the cosmetic and sizing defaults shared by paginators.
type Settings struct {
	PageSize            int
	ButtonsRowSize      int
	PageTemplate        string
	CurrentPageTemplate string
	SymbolLeft          string
	SymbolRight         string
	SymbolFill          string
	ParseMode           string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		PageSize:            15,
		ButtonsRowSize:      1,
		PageTemplate:        "Page {page_number} of {pages_count}",
		CurrentPageTemplate: " {page_number} / {pages_count}",
		SymbolLeft:          "«",
		SymbolRight:         "»",
		SymbolFill:          "•",
		ParseMode:           "Markdown",
	}
}

// SettingsFromConfig maps the paginator config section onto Settings.
// Empty fields keep the built-in defaults when applied via WithSettings.
func SettingsFromConfig(cfg coreconfig.PaginatorConfig) Settings {
	return Settings{
		PageSize:            cfg.PageSize,
		ButtonsRowSize:      cfg.ButtonsRowSize,
		PageTemplate:        cfg.PageTemplate,
		CurrentPageTemplate: cfg.CurrentPageTemplate,
		SymbolLeft:          cfg.SymbolLeft,
		SymbolRight:         cfg.SymbolRight,
		SymbolFill:          cfg.SymbolFill,
		ParseMode:           cfg.ParseMode,
	}
}

func (s Settings) merge(o Settings) Settings {
	if o.PageSize != 0 {
		s.PageSize = o.PageSize
	}
	if o.ButtonsRowSize != 0 {
		s.ButtonsRowSize = o.ButtonsRowSize
	}
	if o.PageTemplate != "" {
		s.PageTemplate = o.PageTemplate
	}
	if o.CurrentPageTemplate != "" {
		s.CurrentPageTemplate = o.CurrentPageTemplate
	}
	if o.SymbolLeft != "" {
		s.SymbolLeft = o.SymbolLeft
	}
	if o.SymbolRight != "" {
		s.SymbolRight = o.SymbolRight
	}
	if o.SymbolFill != "" {
		s.SymbolFill = o.SymbolFill
	}
	if o.ParseMode != "" {
		s.ParseMode = o.ParseMode
	}
	return s
}
