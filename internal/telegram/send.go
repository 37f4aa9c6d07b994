package telegram

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

type sendOptions struct {
	parseMode string
	keyboard  *InlineKeyboardMarkup
}

type SendOption func(*sendOptions)

func WithParseMode(mode string) SendOption {
	return func(o *sendOptions) { o.parseMode = mode }
}

func WithKeyboard(kb InlineKeyboardMarkup) SendOption {
	return func(o *sendOptions) { o.keyboard = &kb }
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts ...SendOption) error {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}

	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	if o.parseMode != "" {
		params.Set("parse_mode", o.parseMode)
	}
	if o.keyboard != nil {
		raw, err := json.Marshal(o.keyboard)
		if err != nil {
			return err
		}
		params.Set("reply_markup", string(raw))
	}
	return c.call(ctx, "sendMessage", params, nil)
}

func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts ...SendOption) error {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}

	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("message_id", strconv.FormatInt(messageID, 10))
	params.Set("text", text)
	if o.parseMode != "" {
		params.Set("parse_mode", o.parseMode)
	}
	if o.keyboard != nil {
		raw, err := json.Marshal(o.keyboard)
		if err != nil {
			return err
		}
		params.Set("reply_markup", string(raw))
	}
	return c.call(ctx, "editMessageText", params, nil)
}

// ClearMessageKeyboard removes the inline keyboard from an existing
// message (the "Close" action on the help message).
func (c *Client) ClearMessageKeyboard(ctx context.Context, chatID, messageID int64) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("message_id", strconv.FormatInt(messageID, 10))
	return c.call(ctx, "editMessageReplyMarkup", params, nil)
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing a spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	params := url.Values{}
	params.Set("callback_query_id", callbackID)
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

// sendContent drives the four content-category send methods. field is the
// Bot API parameter naming the content handle (document, photo, video,
// audio); captionField is "filename" semantics for documents and a
// caption for everything else.
func (c *Client) sendContent(ctx context.Context, method, field string, chatID int64, fileID, filename string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set(field, fileID)
	if filename != "" {
		params.Set("caption", filename)
	}
	return c.call(ctx, method, params, nil)
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, fileID, filename string) error {
	return c.sendContent(ctx, "sendDocument", "document", chatID, fileID, filename)
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, fileID, filename string) error {
	return c.sendContent(ctx, "sendPhoto", "photo", chatID, fileID, filename)
}

func (c *Client) SendVideo(ctx context.Context, chatID int64, fileID, filename string) error {
	return c.sendContent(ctx, "sendVideo", "video", chatID, fileID, filename)
}

func (c *Client) SendAudio(ctx context.Context, chatID int64, fileID, filename string) error {
	return c.sendContent(ctx, "sendAudio", "audio", chatID, fileID, filename)
}
