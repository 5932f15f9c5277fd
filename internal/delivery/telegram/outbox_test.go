package telegram

import (
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []tgbotapi.MessageConfig
	edits   []tgbotapi.EditMessageTextConfig
	nextID  int
	editErr error
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, nil
	}
	s.nextID++
	s.sent = append(s.sent, msg)
	return tgbotapi.Message{MessageID: s.nextID}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if edit, ok := c.(tgbotapi.EditMessageTextConfig); ok {
		s.edits = append(s.edits, edit)
		if s.editErr != nil {
			return nil, s.editErr
		}
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func runOutbox(o *outbox, ops ...renderOp) {
	done := make(chan struct{})
	go func() {
		o.run()
		close(done)
	}()
	for _, op := range ops {
		o.push(op)
	}
	o.close()
	<-done
}

func TestOutboxEditsLatestMessage(t *testing.T) {
	bot := &fakeSender{}
	o := newOutbox(bot, 42, zap.NewNop())

	runOutbox(o,
		renderOp{Text: "round 1", Fresh: true},
		renderOp{Text: "question 1"},
		renderOp{Text: "round 2", Fresh: true},
		renderOp{Text: "question 2"},
	)

	if len(bot.sent) != 2 || len(bot.edits) != 2 {
		t.Fatalf("sent %d, edited %d", len(bot.sent), len(bot.edits))
	}
	if bot.edits[0].MessageID != 1 || bot.edits[1].MessageID != 2 {
		t.Fatalf("edit targets = %d, %d", bot.edits[0].MessageID, bot.edits[1].MessageID)
	}
	if bot.sent[0].ParseMode != tgbotapi.ModeMarkdownV2 || bot.edits[0].ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Fatal("messages must use MarkdownV2")
	}
}

func TestOutboxSkipsEditsWithoutMessage(t *testing.T) {
	bot := &fakeSender{}
	runOutbox(newOutbox(bot, 42, zap.NewNop()), renderOp{Text: "orphan edit"})

	if len(bot.edits) != 0 {
		t.Fatalf("edits = %d, want none before the first message", len(bot.edits))
	}
}

func TestOutboxSurvivesEditErrors(t *testing.T) {
	bot := &fakeSender{editErr: errors.New("Bad Request: message is not modified")}
	runOutbox(newOutbox(bot, 42, zap.NewNop()),
		renderOp{Text: "a", Fresh: true},
		renderOp{Text: "a"},
		renderOp{Text: "b", Fresh: true},
	)

	if len(bot.sent) != 2 {
		t.Fatalf("sent = %d, want delivery to continue after a failed edit", len(bot.sent))
	}
}

func TestOutboxDropsAfterClose(t *testing.T) {
	bot := &fakeSender{}
	o := newOutbox(bot, 42, zap.NewNop())
	o.close()
	o.close()

	o.push(renderOp{Text: "late", Fresh: true})
	o.run()

	if len(bot.sent) != 0 {
		t.Fatalf("sent = %d after close", len(bot.sent))
	}
}
