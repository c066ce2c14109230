package paginator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
)

const (
	// RouteKey is the callback key of navigation buttons.
	RouteKey = "paginator_open_page"
	// NoopKey is the callback key of inert buttons (fillers and the page counter).
	NoopKey = "paginator_nothing"
)

// renderMode is chosen once from which item callbacks were supplied.
type renderMode uint8

const (
	renderNeither renderMode = iota
	renderRows
	renderButtons
	renderBoth
)

func selectMode(rows, buttons bool) renderMode {
	switch {
	case rows && buttons:
		return renderBoth
	case rows:
		return renderRows
	case buttons:
		return renderButtons
	}
	return renderNeither
}

func (m renderMode) rows() bool    { return m == renderRows || m == renderBoth }
func (m renderMode) buttons() bool { return m == renderButtons || m == renderBoth }

func (m renderMode) String() string {
	switch m {
	case renderRows:
		return "rows"
	case renderButtons:
		return "buttons"
	case renderBoth:
		return "both"
	}
	return "neither"
}

// PageData returns the callback data of a button navigating to page.
func PageData(page int) string {
	return callbacks.Encode(RouteKey, strconv.Itoa(page))
}

// NoopData returns the callback data of inert buttons.
func NoopData() string {
	return callbacks.Encode(NoopKey)
}

// ParsePage recovers the target page from navigation callback data.
func ParsePage(data string) (int, error) {
	key, _ := callbacks.ParseData(data)
	if !strings.HasPrefix(key, RouteKey) {
		return 0, fmt.Errorf("%w: %q is not a page route", ErrCallbackData, data)
	}
	page, err := callbacks.TrailingInt(data, "|_")
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrCallbackData, data, err)
	}
	return page, nil
}

// Render returns the current page without any side effect.
func (p *Paginator) Render() (Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.render()
}

func (p *Paginator) render() (Message, error) {
	kb, err := p.keyboard()
	if err != nil {
		return Message{}, err
	}
	return Message{
		Text:           p.text(),
		ParseMode:      p.parseMode,
		Keyboard:       kb,
		DisablePreview: true,
	}, nil
}

// visible returns the objects of the current page clipped to the list bounds
// together with the flat index of the first one.
func (p *Paginator) visible() ([]any, int) {
	start := p.current * p.pageSize
	if start >= len(p.objects) {
		return nil, start
	}
	end := start + p.pageSize
	if end > len(p.objects) {
		end = len(p.objects)
	}
	return p.objects[start:end], start
}

func (p *Paginator) text() string {
	var rows strings.Builder
	if p.mode.rows() {
		items, offset := p.visible()
		for i, it := range items {
			rows.WriteString(p.rowText(it, offset+i))
			rows.WriteByte('\n')
		}
	}
	values := pageValues(p.current+1, p.pagesCount)
	values[placeholderRows] = rows.String()
	return p.pageTmpl.execute(values)
}

func (p *Paginator) navigationRow() []Button {
	row := make([]Button, 0, 3)
	if p.current == 0 {
		row = append(row, Button{Text: p.symbolFill, Data: NoopData()})
	} else {
		row = append(row, Button{Text: p.symbolLeft, Data: PageData(p.current - 1)})
	}

	row = append(row, Button{
		Text: p.currentTmpl.execute(pageValues(p.current+1, p.pagesCount)),
		Data: NoopData(),
	})

	if p.current+1 < p.pagesCount {
		row = append(row, Button{Text: p.symbolRight, Data: PageData(p.current + 1)})
	} else {
		row = append(row, Button{Text: p.symbolFill, Data: NoopData()})
	}
	return row
}

func (p *Paginator) keyboard() (Keyboard, error) {
	var kb Keyboard
	if p.mode.buttons() {
		items, offset := p.visible()
		var row []Button
		for i, it := range items {
			if len(row) == p.rowSize {
				kb = append(kb, row)
				row = nil
			}
			data := p.buttonData(it, offset+i)
			if len(data) > callbacks.MaxDataLen {
				return nil, fmt.Errorf("%w: item %d data is %d bytes, limit %d",
					ErrCallbackData, offset+i, len(data), callbacks.MaxDataLen)
			}
			row = append(row, Button{Text: p.buttonText(it, offset+i), Data: data})
		}
		if len(row) > 0 {
			kb = append(kb, row)
		}
	}
	kb = append(kb, p.navigationRow())
	for _, r := range p.ending {
		kb = append(kb, append([]Button(nil), r...))
	}
	return kb, nil
}
