package paginator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/tgpaginator/core/logger"
)

const logComponent = "paginator"

// Messenger is the messaging collaborator used to deliver rendered pages.
// Errors are transport failures and are returned unwrapped.
type Messenger interface {
	Send(ctx context.Context, chatID int64, msg Message) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, msg Message) error
}

// Start renders the current page, sends it to the paginator chat and registers
// the resulting message in reg. A paginator can be bound only once.
func (p *Paginator) Start(ctx context.Context, m Messenger, reg *Registry) (MessageRef, error) {
	if m == nil || reg == nil {
		return MessageRef{}, fmt.Errorf("%w: nil messenger or registry", ErrInvalidConfig)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bound {
		return MessageRef{}, fmt.Errorf("%w: chat_id=%d message_id=%d", ErrAlreadyBound, p.chatID, p.messageID)
	}

	msg, err := p.render()
	if err != nil {
		return MessageRef{}, err
	}
	messageID, err := m.Send(ctx, p.chatID, msg)
	if err != nil {
		return MessageRef{}, err
	}
	ref := p.bind(reg, p.chatID, messageID)
	p.log(ctx, "paginator.start")
	return ref, nil
}

// Attach re-targets the paginator to an existing message, edits that message
// to the current page and registers it in reg.
func (p *Paginator) Attach(ctx context.Context, m Messenger, reg *Registry, chatID int64, messageID int) (MessageRef, error) {
	if m == nil || reg == nil {
		return MessageRef{}, fmt.Errorf("%w: nil messenger or registry", ErrInvalidConfig)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bound {
		return MessageRef{}, fmt.Errorf("%w: chat_id=%d message_id=%d", ErrAlreadyBound, p.chatID, p.messageID)
	}

	msg, err := p.render()
	if err != nil {
		return MessageRef{}, err
	}
	if err := m.Edit(ctx, chatID, messageID, msg); err != nil {
		return MessageRef{}, err
	}
	ref := p.bind(reg, chatID, messageID)
	p.log(ctx, "paginator.attach")
	return ref, nil
}

// Navigate moves to page, clamped to the valid range, and edits the bound message.
func (p *Paginator) Navigate(ctx context.Context, m Messenger, page int) (MessageRef, error) {
	if m == nil {
		return MessageRef{}, fmt.Errorf("%w: nil messenger", ErrInvalidConfig)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.bound {
		return MessageRef{}, ErrNotBound
	}

	prev := p.current
	p.current = p.clamp(page)
	msg, err := p.render()
	if err == nil {
		err = m.Edit(ctx, p.chatID, p.messageID, msg)
	}
	if err != nil {
		// the message still shows prev
		p.current = prev
		return MessageRef{}, err
	}
	p.log(ctx, "paginator.page", slog.Int("requested", page))
	return MessageRef{ChatID: p.chatID, MessageID: p.messageID}, nil
}

func (p *Paginator) bind(reg *Registry, chatID int64, messageID int) MessageRef {
	p.chatID = chatID
	p.messageID = messageID
	p.bound = true
	ref := MessageRef{ChatID: chatID, MessageID: messageID}
	reg.Register(Key(ref), p)
	return ref
}

func (p *Paginator) log(ctx context.Context, event string, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.Int64("chat_id", p.chatID),
		slog.Int("message_id", p.messageID),
		slog.Int("page", p.current),
		slog.Int("pages", p.pagesCount),
		slog.String("mode", p.mode.String()),
	}
	logger.Debug(ctx, logComponent, event, append(attrs, extra...)...)
}
