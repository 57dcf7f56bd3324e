package notifier

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"uk_numcheck/internal/worker"
	"uk_numcheck/pkg/logx"
)

// TelegramBot pushes refresh lifecycle notifications to an ops chat.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run consumes events until the context ends or the channel closes. A failed
// send is logged and dropped, notifications never block the refresh job.
func (b *TelegramBot) Run(ctx context.Context, events <-chan worker.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			if err := b.Send(ctx, event); err != nil {
				logger(ctx).Error("failed to send notification", logx.Error(err))
			}
		}
	}
}

// Send formats one event and posts it to the ops chat.
func (b *TelegramBot) Send(ctx context.Context, event worker.Event) error {
	msg := tu.Message(tu.ID(b.chatID), formatEvent(event)).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText posts a plain text message, used for the startup check.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)

	return err
}

func formatEvent(event worker.Event) string {
	switch event.Kind {
	case worker.EventPublished:
		return fmt.Sprintf(
			"✅ <b>Rule set published</b>\n\n"+
				"📦 <b>Rules:</b> %d\n"+
				"🗂 <b>Snapshot:</b> <code>%s</code>\n"+
				"🕒 <b>Fetched:</b> %s\n"+
				"🚮 <b>Rows skipped:</b> %d",
			event.Meta.RuleCount,
			event.Meta.ID,
			event.Meta.FetchedAt.Format(time.RFC3339),
			event.SkippedRows,
		)
	case worker.EventDriftWarning:
		return fmt.Sprintf(
			"⚠️ <b>Rule count drift</b>\n\n"+
				"⏮ <b>Was:</b> %d\n"+
				"⏭ <b>Now:</b> %d\n"+
				"🗂 <b>Snapshot:</b> <code>%s</code>",
			event.PrevRuleCount,
			event.Meta.RuleCount,
			event.Meta.ID,
		)
	case worker.EventRefreshFailed:
		return fmt.Sprintf(
			"🚨 <b>Refresh failed</b>\n\n<code>%s</code>",
			html.EscapeString(fmt.Sprintf("%v", event.Err)),
		)
	default:
		return fmt.Sprintf("ℹ️ %s", event.Kind)
	}
}
