// Package bot is the worker-side listener: it long-polls Telegram for
// updates and drives the ingestion path for admin uploads and the
// delivery engine for share-link redemptions.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"nexusfiles/internal/modules/delivery"
	"nexusfiles/internal/modules/ingest"
	"nexusfiles/internal/pkg/sharelink"
	"nexusfiles/internal/telegram"

	"github.com/sirupsen/logrus"
)

const (
	pollTimeoutSeconds = 30
	pollRetryDelay     = 3 * time.Second
)

type Ingestor interface {
	Register(ctx context.Context, up ingest.Upload) (shareToken string, created bool, err error)
}

type Deliverer interface {
	Redeem(ctx context.Context, chatID int64, shareToken string) error
}

type Bot struct {
	client   *telegram.Client
	ingestor Ingestor
	delivery Deliverer
	username string
	log      *logrus.Logger
}

func New(client *telegram.Client, ingestor Ingestor, deliverer Deliverer, username string, log *logrus.Logger) *Bot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bot{
		client:   client,
		ingestor: ingestor,
		delivery: deliverer,
		username: username,
		log:      log,
	}
}

// Run polls for updates until ctx is cancelled. It returns an error only
// when the bot cannot identify itself at startup; transient polling
// failures are logged and retried.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.client.GetMe(ctx)
	if err != nil {
		return err
	}
	if b.username == "" {
		b.username = me.Username
	}
	b.log.WithField("username", me.Username).Info("bot is starting polling")

	var offset int64
	for {
		updates, err := b.client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.WithError(err).Error("poll for updates failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	// The bot only works over direct chats; channel and group traffic
	// is ignored.
	if msg.Chat.Type != "private" || msg.From == nil {
		return
	}

	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		b.handleStart(ctx, msg)
	case strings.HasPrefix(msg.Text, "/help"):
		b.sendHelp(ctx, msg.Chat.ID)
	default:
		if up, ok := extractUpload(msg); ok {
			b.handleUpload(ctx, msg.Chat.ID, up)
		}
	}
}

// handleStart answers the bare /start greeting or redeems a share token
// passed as the deep-link argument.
func (b *Bot) handleStart(ctx context.Context, msg *telegram.Message) {
	args := strings.Fields(msg.Text)[1:]
	if len(args) == 0 {
		name := msg.From.FirstName
		if name == "" {
			name = "there"
		}
		err := b.client.SendMessage(ctx, msg.Chat.ID,
			"Hi "+name+"! This is Nexus File Hosting Bot.",
			telegram.WithKeyboard(telegram.InlineKeyboardMarkup{
				InlineKeyboard: [][]telegram.InlineKeyboardButton{
					{{Text: "How to use", CallbackData: "help_general"}},
				},
			}))
		if err != nil {
			b.log.WithError(err).Error("failed to send welcome message")
		}
		return
	}

	shareToken := args[0]
	err := b.delivery.Redeem(ctx, msg.Chat.ID, shareToken)
	switch {
	case err == nil:
		return
	case errors.Is(err, delivery.ErrInvalidToken):
		b.reply(ctx, msg.Chat.ID, "Invalid or expired file link.")
	case errors.Is(err, delivery.ErrExhausted):
		b.reply(ctx, msg.Chat.ID, "Sorry, I couldn't send this file. It might be a type I can't handle or it's no longer available.")
	default:
		b.log.WithError(err).WithField("token", shareToken).Error("redemption failed")
		b.reply(ctx, msg.Chat.ID, "Something went wrong. Please try again later.")
	}
}

func (b *Bot) handleUpload(ctx context.Context, chatID int64, up ingest.Upload) {
	shareToken, created, err := b.ingestor.Register(ctx, up)
	switch {
	case errors.Is(err, ingest.ErrUnauthorized):
		b.reply(ctx, chatID, "Sorry, only the admin can upload files.")
		return
	case err != nil:
		b.log.WithError(err).WithField("file_id", up.FileID).Error("failed to store file record")
		b.reply(ctx, chatID, "Error storing file. There might have been a database issue or a rare token collision. Please try again.")
		return
	}

	link := sharelink.Format(b.username, shareToken)
	if created {
		b.reply(ctx, chatID, "File stored! Your shareable link is:\n"+link)
		return
	}
	b.reply(ctx, chatID, "This file seems to be already stored. Link:\n"+link)
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if err := b.client.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.log.WithError(err).Debug("failed to answer callback query")
	}
	if cb.Message == nil {
		return
	}

	switch cb.Data {
	case "help_general":
		err := b.client.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.MessageID,
			helpText, telegram.WithParseMode("Markdown"), telegram.WithKeyboard(helpKeyboard()))
		if err != nil {
			b.log.WithError(err).Error("failed to show help message")
		}
	case "help_close":
		if err := b.client.ClearMessageKeyboard(ctx, cb.Message.Chat.ID, cb.Message.MessageID); err != nil {
			b.log.WithError(err).Debug("failed to clear help keyboard")
		}
	}
}

func (b *Bot) sendHelp(ctx context.Context, chatID int64) {
	err := b.client.SendMessage(ctx, chatID, helpText,
		telegram.WithParseMode("Markdown"), telegram.WithKeyboard(helpKeyboard()))
	if err != nil {
		b.log.WithError(err).Error("failed to send help message")
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.client.SendMessage(ctx, chatID, text); err != nil {
		b.log.WithError(err).Error("failed to send reply")
	}
}

const helpText = "*Nexus File Hosting Bot Help*\n\n" +
	"*For Admins:*\n" +
	"1. Create a private Telegram channel.\n" +
	"2. Add this bot to the channel as an administrator.\n" +
	"3. Upload files to your private channel.\n" +
	"4. Forward those files from the channel to me in this private chat.\n" +
	"5. I will reply with a unique shareable link for each file.\n\n" +
	"*For Users:*\n" +
	"Simply click on a shareable link provided by an admin. I will send you the file.\n\n" +
	"*Commands:*\n" +
	"/start - Welcome message or retrieve a file if a token is provided.\n" +
	"/help - Shows this help message."

func helpKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "Close", CallbackData: "help_close"}},
		},
	}
}
