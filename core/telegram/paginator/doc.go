// Package paginator renders paged views of arbitrary lists as Telegram messages
// with inline navigation keyboards and routes navigation clicks back to the
// paginator instance that rendered the message.
package paginator
