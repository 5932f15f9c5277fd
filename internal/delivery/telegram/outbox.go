package telegram

import (
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const outboxSize = 32

// renderOp is one update of a game's chat.
type renderOp struct {
	Text      string
	Keyboard  *tgbotapi.InlineKeyboardMarkup
	Fresh     bool // send a new message instead of editing the current one
	Droppable bool // may be skipped when the chat is lagging behind
}

// outbox delivers the render ops of one game in order. Fresh ops become the
// message that later edits target.
type outbox struct {
	bot    Sender
	chatID int64
	logger *zap.Logger

	ops       chan renderOp
	closeOnce sync.Once
	done      chan struct{}
	msgID     int
}

func newOutbox(bot Sender, chatID int64, logger *zap.Logger) *outbox {
	return &outbox{
		bot:    bot,
		chatID: chatID,
		logger: logger,
		ops:    make(chan renderOp, outboxSize),
		done:   make(chan struct{}),
	}
}

// push queues op. Droppable ops are discarded when the queue is full. Ops
// pushed after close are discarded.
func (o *outbox) push(op renderOp) {
	select {
	case <-o.done:
		return
	default:
	}

	if op.Droppable {
		select {
		case o.ops <- op:
		default:
			o.logger.Debug("render op dropped", zap.Int64("chat_id", o.chatID))
		}
		return
	}

	select {
	case o.ops <- op:
	case <-o.done:
	}
}

// close stops accepting ops. Queued ops are still delivered.
func (o *outbox) close() {
	o.closeOnce.Do(func() { close(o.done) })
}

// run delivers ops until the outbox is closed and drained.
func (o *outbox) run() {
	for {
		select {
		case op := <-o.ops:
			o.deliver(op)
		case <-o.done:
			for {
				select {
				case op := <-o.ops:
					o.deliver(op)
				default:
					return
				}
			}
		}
	}
}

func (o *outbox) deliver(op renderOp) {
	if op.Fresh {
		msg := newMessage(o.chatID, op.Text)
		if op.Keyboard != nil {
			msg.ReplyMarkup = op.Keyboard
		}
		sent, err := o.bot.Send(msg)
		if err != nil {
			o.logger.Error("failed to send telegram message",
				zap.Int64("chat_id", o.chatID),
				zap.Error(err),
			)
			return
		}
		o.msgID = sent.MessageID
		return
	}

	if o.msgID == 0 {
		return
	}

	if _, err := o.bot.Request(newEdit(o.chatID, o.msgID, op.Text, op.Keyboard)); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		o.logger.Warn("failed to edit telegram message",
			zap.Int64("chat_id", o.chatID),
			zap.Int("message_id", o.msgID),
			zap.Error(err),
		)
	}
}
