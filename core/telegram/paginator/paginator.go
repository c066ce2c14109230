package paginator

import (
	"fmt"
	"sync"
)

// ItemFunc maps an object and its flat index within the full list to a string.
type ItemFunc func(item any, index int) string

// Button is a single inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Keyboard is an ordered list of button rows.
type Keyboard [][]Button

// Message is a rendered page ready to be sent or edited.
type Message struct {
	Text           string
	ParseMode      string
	Keyboard       Keyboard
	DisablePreview bool
}

// MessageRef identifies a chat message backing a paginator.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Paginator owns one paged view over a fixed object list.
//
// A paginator is bound to at most one message. All state transitions and
// outbound calls are serialized by mu.
type Paginator struct {
	mu sync.Mutex

	objects    []any
	pageSize   int
	rowSize    int
	pagesCount int
	current    int

	chatID    int64
	messageID int
	bound     bool

	rowText    ItemFunc
	buttonText ItemFunc
	buttonData ItemFunc
	mode       renderMode

	pageTmpl    template
	currentTmpl template

	symbolLeft  string
	symbolRight string
	symbolFill  string
	parseMode   string
	ending      Keyboard
}

// Option customises a Paginator at construction time.
type Option func(*options)

type options struct {
	settings   Settings
	startPage  int
	rowText    ItemFunc
	buttonText ItemFunc
	buttonData ItemFunc
	ending     Keyboard
}

// WithSettings overrides defaults with every non-zero field of s.
func WithSettings(s Settings) Option {
	return func(o *options) { o.settings = o.settings.merge(s) }
}

// WithRowText sets the function producing one body line per visible item.
func WithRowText(fn ItemFunc) Option {
	return func(o *options) { o.rowText = fn }
}

// WithButtonText sets the per-item button label. Per-item buttons are rendered
// only when WithButtonData is set as well.
func WithButtonText(fn ItemFunc) Option {
	return func(o *options) { o.buttonText = fn }
}

// WithButtonData sets the per-item button callback data.
func WithButtonData(fn ItemFunc) Option {
	return func(o *options) { o.buttonData = fn }
}

// WithPageSize sets the number of items per page.
func WithPageSize(n int) Option {
	return func(o *options) { o.settings.PageSize = n }
}

// WithButtonsRowSize sets how many per-item buttons share a keyboard row.
func WithButtonsRowSize(n int) Option {
	return func(o *options) { o.settings.ButtonsRowSize = n }
}

// WithPageTemplate sets the message template. Placeholders: {rows_text}, {page_number}, {pages_count}.
func WithPageTemplate(tmpl string) Option {
	return func(o *options) { o.settings.PageTemplate = tmpl }
}

// WithCurrentPageTemplate sets the center button label. Placeholders: {page_number}, {pages_count}.
func WithCurrentPageTemplate(tmpl string) Option {
	return func(o *options) { o.settings.CurrentPageTemplate = tmpl }
}

// WithSymbols sets the left arrow, right arrow and filler glyphs.
func WithSymbols(left, right, fill string) Option {
	return func(o *options) {
		o.settings.SymbolLeft = left
		o.settings.SymbolRight = right
		o.settings.SymbolFill = fill
	}
}

// WithParseMode sets the Telegram parse mode used for the message text.
func WithParseMode(mode string) Option {
	return func(o *options) { o.settings.ParseMode = mode }
}

// WithEnding appends extra keyboard rows after the navigation row.
func WithEnding(rows ...[]Button) Option {
	return func(o *options) { o.ending = append(o.ending, rows...) }
}

// WithStartPage sets the page rendered by Start/Attach. Out of range values are clamped.
func WithStartPage(page int) Option {
	return func(o *options) { o.startPage = page }
}

// Objects converts a typed slice to the []any accepted by New.
func Objects[T any](items []T) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// New builds a paginator for chatID over objects.
func New(chatID int64, objects []any, opts ...Option) (*Paginator, error) {
	o := options{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&o)
	}
	s := o.settings
	if s.PageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be > 0, got %d", ErrInvalidConfig, s.PageSize)
	}
	if s.ButtonsRowSize <= 0 {
		return nil, fmt.Errorf("%w: buttons row size must be > 0, got %d", ErrInvalidConfig, s.ButtonsRowSize)
	}

	pageTmpl, err := parseTemplate(s.PageTemplate, placeholderRows, placeholderPage, placeholderPages)
	if err != nil {
		return nil, err
	}
	currentTmpl, err := parseTemplate(s.CurrentPageTemplate, placeholderPage, placeholderPages)
	if err != nil {
		return nil, err
	}

	items := append([]any(nil), objects...)
	ending := make(Keyboard, 0, len(o.ending))
	for _, row := range o.ending {
		ending = append(ending, append([]Button(nil), row...))
	}

	p := &Paginator{
		objects:     items,
		pageSize:    s.PageSize,
		rowSize:     s.ButtonsRowSize,
		pagesCount:  (len(items) + s.PageSize - 1) / s.PageSize,
		chatID:      chatID,
		rowText:     o.rowText,
		buttonText:  o.buttonText,
		buttonData:  o.buttonData,
		mode:        selectMode(o.rowText != nil, o.buttonText != nil && o.buttonData != nil),
		pageTmpl:    pageTmpl,
		currentTmpl: currentTmpl,
		symbolLeft:  s.SymbolLeft,
		symbolRight: s.SymbolRight,
		symbolFill:  s.SymbolFill,
		parseMode:   s.ParseMode,
		ending:      ending,
	}
	p.current = p.clamp(o.startPage)
	return p, nil
}

// PagesCount returns ceil(len(objects)/pageSize); zero for an empty list.
func (p *Paginator) PagesCount() int { return p.pagesCount }

// PageSize returns the configured page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// CurrentPage returns the zero-based page currently displayed.
func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Ref returns the bound message reference and whether the paginator is bound.
func (p *Paginator) Ref() (MessageRef, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return MessageRef{ChatID: p.chatID, MessageID: p.messageID}, p.bound
}

func (p *Paginator) clamp(page int) int {
	if page >= p.pagesCount {
		page = p.pagesCount - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
