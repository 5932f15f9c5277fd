package terminal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

const stopTimeout = time.Second

// Controller forwards player input to the running session.
type Controller interface {
	Reveal()
	Choose(option int)
	Advance()
	Stop()
}

// LoopController runs every input on the session's loop. Input never blocks
// the UI, except Stop, which waits for the session to release its timers.
type LoopController struct {
	loop    *clock.Loop
	session *service.Session
	logger  *zap.Logger
}

func NewLoopController(loop *clock.Loop, session *service.Session, logger *zap.Logger) *LoopController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoopController{loop: loop, session: session, logger: logger}
}

func (c *LoopController) Reveal() {
	c.do("reveal", c.session.Reveal)
}

func (c *LoopController) Choose(option int) {
	c.do("choose", func() error {
		_, err := c.session.Choose(option)
		return err
	})
}

func (c *LoopController) Advance() {
	c.do("advance", c.session.Advance)
}

func (c *LoopController) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := c.loop.Call(ctx, c.session.Stop); err != nil {
		c.logger.Debug("stop session", zap.Error(err))
	}
}

func (c *LoopController) do(action string, f func() error) {
	c.loop.Do(func() {
		err := f()
		switch {
		case err == nil:
		case errors.Is(err, service.ErrInvalidPhase), errors.Is(err, service.ErrInvalidOption):
			c.logger.Debug("input ignored", zap.String("action", action), zap.Error(err))
		default:
			c.logger.Error("input failed", zap.String("action", action), zap.Error(err))
		}
	})
}
