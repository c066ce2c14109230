package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/tgpaginator/core/logger"
	tg "github.com/m3rciful/tgpaginator/core/telegram"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
	"github.com/m3rciful/tgpaginator/core/telegram/commands"
	"github.com/m3rciful/tgpaginator/core/telegram/format"
	tghelpers "github.com/m3rciful/tgpaginator/core/telegram/helpers"
	"github.com/m3rciful/tgpaginator/core/telegram/keyboard"
	"github.com/m3rciful/tgpaginator/core/telegram/paginator"

	tele "gopkg.in/telebot.v4"
)

// Callback keys served by the catalog.
const (
	KeyOpenProduct = "open_product"
	KeyOpenList    = "products"
	KeyListPicker  = "products_list"
)

const (
	productsPageSize = 4
	selectorText     = "Choose a list"
	backText         = "Back"
	parseMode        = string(tele.ModeMarkdown)
)

// MessengerFunc returns the messenger used to deliver pages for an update.
type MessengerFunc func(c tele.Context) paginator.Messenger

// Handlers serves the catalog commands and callbacks.
type Handlers struct {
	store     Store
	pages     *paginator.Registry
	settings  paginator.Settings
	messenger MessengerFunc
}

// NewHandlers creates catalog handlers. Paginators are registered in pages
// and styled with settings.
func NewHandlers(store Store, pages *paginator.Registry, settings paginator.Settings) *Handlers {
	return &Handlers{
		store:    store,
		pages:    pages,
		settings: settings,
		messenger: func(c tele.Context) paginator.Messenger {
			return paginator.NewTeleMessenger(c.Bot())
		},
	}
}

// WithMessenger replaces how pages are delivered; used by tests.
func (h *Handlers) WithMessenger(fn MessengerFunc) *Handlers {
	h.messenger = fn
	return h
}

// Register binds the catalog commands and callbacks.
func (h *Handlers) Register(reg *tg.Registry) error {
	return errors.Join(
		reg.RegisterCommand("/products", commands.Command{
			Handler:     h.ShowProducts,
			Description: "Products available for sale",
		}),
		reg.RegisterCommand("/catalog", commands.Command{
			Handler:     h.ShowSelector,
			Description: "Browse product lists",
			Aliases:     []string{"lists"},
		}),
		reg.RegisterCallback(KeyListPicker, h.ShowSelector),
		reg.RegisterCallback(KeyOpenList, h.OpenList),
		reg.RegisterCallback(KeyOpenProduct, h.OpenProduct),
	)
}

func escape(s string) string {
	return format.Escape(s, parseMode)
}

// ProductsPaginator builds the /products view: one button per product.
func (h *Handlers) ProductsPaginator(chatID int64, products []Product) (*paginator.Paginator, error) {
	return paginator.New(chatID, paginator.Objects(products),
		paginator.WithSettings(h.settings),
		paginator.WithParseMode(parseMode),
		paginator.WithPageSize(productsPageSize),
		paginator.WithButtonText(func(item any, _ int) string {
			p := item.(Product)
			return fmt.Sprintf("%s | %s", p.Name, p.PriceLabel())
		}),
		paginator.WithButtonData(func(item any, _ int) string {
			return callbacks.Encode(KeyOpenProduct, strconv.FormatInt(item.(Product).ID, 10))
		}),
		paginator.WithPageTemplate("*Products available for sale*\n\n_Page {page_number} of {pages_count}_"),
	)
}

// ListPaginator builds a numbered text view of one list with a Back row.
func (h *Handlers) ListPaginator(chatID int64, list List, products []Product) (*paginator.Paginator, error) {
	title := escape(list.Title)
	return paginator.New(chatID, paginator.Objects(products),
		paginator.WithSettings(h.settings),
		paginator.WithParseMode(parseMode),
		paginator.WithPageSize(productsPageSize),
		paginator.WithRowText(func(item any, index int) string {
			p := item.(Product)
			return fmt.Sprintf("*%d.* %s - %s", index+1, escape(p.Name), escape(p.PriceLabel()))
		}),
		paginator.WithPageTemplate("*"+escapeTemplate(title)+" available for sale:*\n\n{rows_text}\n_Page {page_number} of {pages_count}_"),
		paginator.WithEnding([]paginator.Button{{Text: backText, Data: callbacks.Encode(KeyListPicker)}}),
	)
}

// escapeTemplate doubles braces so literal text survives template parsing.
func escapeTemplate(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

// ShowProducts sends the stationery paginator.
func (h *Handlers) ShowProducts(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	products, err := h.store.Products(ctx, ListStationery)
	if err != nil {
		return err
	}
	p, err := h.ProductsPaginator(c.Chat().ID, products)
	if err != nil {
		return err
	}
	ref, err := p.Start(ctx, h.messenger(c), h.pages)
	if err != nil {
		return err
	}
	h.logView(ctx, "catalog.products", ListStationery, ref, p)
	return nil
}

// SelectorMarkup lists the product lists as one button per row.
func SelectorMarkup(lists []List) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(lists))
	for _, l := range lists {
		btns = append(btns, keyboard.InlineBtn{Text: l.Title, Unique: KeyOpenList, Data: strconv.Itoa(l.ID)})
	}
	return keyboard.InlineButtons(btns)
}

// ShowSelector sends the list picker, or turns the clicked message back into it.
func (h *Handlers) ShowSelector(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lists, err := h.store.Lists(ctx)
	if err != nil {
		return err
	}
	markup := SelectorMarkup(lists)
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		// the page view is gone, so is its paginator
		h.pages.Remove(paginator.Key{ChatID: cb.Message.Chat.ID, MessageID: cb.Message.ID})
		return tghelpers.EditMD(c, selectorText, markup)
	}
	return tghelpers.SendMD(c, selectorText, markup)
}

// OpenList replaces the selector message with a paginator over the chosen list.
func (h *Handlers) OpenList(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}
	listID, err := callbacks.PayloadInt(c)
	if err != nil {
		return fmt.Errorf("catalog: bad list id: %w", err)
	}
	list, err := h.store.List(ctx, listID)
	if errors.Is(err, ErrListNotFound) {
		return callbacks.Answer(c, &tele.CallbackResponse{Text: "This list is no longer available"})
	}
	if err != nil {
		return err
	}
	products, err := h.store.Products(ctx, listID)
	if err != nil {
		return err
	}
	p, err := h.ListPaginator(cb.Message.Chat.ID, list, products)
	if err != nil {
		return err
	}
	ref, err := p.Attach(ctx, h.messenger(c), h.pages, cb.Message.Chat.ID, cb.Message.ID)
	if err != nil {
		return err
	}
	h.logView(ctx, "catalog.list", listID, ref, p)
	return nil
}

// OpenProduct sends the details of a product.
func (h *Handlers) OpenProduct(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return fmt.Errorf("catalog: bad product id: %w", err)
	}
	product, err := h.store.Product(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return callbacks.Answer(c, &tele.CallbackResponse{Text: "This product is no longer available"})
	}
	if err != nil {
		return err
	}
	logger.Debug(ctx, "service.catalog", "catalog.product", slog.Int64("product_id", id))
	return tghelpers.SendMD(c, ProductText(product))
}

// ProductText renders the product card in legacy Markdown.
func ProductText(p Product) string {
	desc := format.DerefString(p.Description, "No description yet.")
	return fmt.Sprintf("*%s*\n\nPrice: %s\n%s", escape(p.Name), escape(p.PriceLabel()), escape(desc))
}

func (h *Handlers) logView(ctx context.Context, event string, listID int, ref paginator.MessageRef, p *paginator.Paginator) {
	logger.Info(ctx, "service.catalog", event,
		slog.String("status", "ok"),
		slog.Int("list_id", listID),
		slog.Int64("chat_id", ref.ChatID),
		slog.Int("message_id", ref.MessageID),
		slog.Int("pages", p.PagesCount()),
	)
}
