package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

// presenter turns the events of one session into render ops. It runs on the
// session's loop.
type presenter struct {
	token          uuid.UUID
	course         string
	difficulty     entities.Difficulty
	clock          clock.Clock
	renderInterval time.Duration
	push           func(renderOp)
	onFinish       func()

	view        roundView
	records     []entities.AnswerRecord
	lastRender  time.Time
	lastSeconds int
}

func newPresenter(
	token uuid.UUID,
	course string,
	d entities.Difficulty,
	clk clock.Clock,
	renderInterval time.Duration,
	push func(renderOp),
) *presenter {
	return &presenter{
		token:          token,
		course:         course,
		difficulty:     d,
		clock:          clk,
		renderInterval: renderInterval,
		push:           push,
	}
}

func (p *presenter) OnGameEvent(e service.Event) {
	switch e.Kind {
	case service.EventRoundStarted:
		p.view = roundView{
			Course:      p.course,
			Difficulty:  p.difficulty,
			Round:       e.Round,
			TotalRounds: e.TotalRounds,
			Log:         service.AnswerLog(p.records),
		}
		p.emit(renderCards(p.view), buildCardsKeyboard(p.token, e.Round), true, false)

	case service.EventQuestionRevealed:
		p.view.Question = e.Question
		p.view.Timer = e.Timer
		p.renderQuestion(false)

	case service.EventTick:
		p.view.Timer = e.Timer
		if p.view.Question == nil || p.view.Record != nil {
			return
		}
		if e.Timer.Seconds() == p.lastSeconds || p.clock.Now().Sub(p.lastRender) < p.renderInterval {
			return
		}
		p.renderQuestion(true)

	case service.EventLowTime:
		p.view.Timer = e.Timer
		p.renderQuestion(false)

	case service.EventStressApplied:
		p.view.Timer = e.Timer
		p.view.Stress = e.Stress
		p.renderQuestion(false)

	case service.EventStressCleared:
		p.view.Stress = nil
		if p.view.Record == nil {
			p.view.Timer = e.Timer
			p.renderQuestion(false)
		}

	case service.EventTimeUp:
		p.view.Timer = e.Timer
		p.view.TimeUp = true

	case service.EventRoundFinalized:
		p.records = append(p.records, *e.Record)
		p.view.Record = e.Record
		p.view.Stress = nil
		p.view.Log = service.AnswerLog(p.records)

		kb := buildNextKeyboard(p.token, e.Round, e.Round+1 >= e.TotalRounds)
		if p.view.TimeUp {
			// The session moves on by itself.
			kb = nil
		}
		p.emit(renderFinalized(p.view), kb, false, false)

	case service.EventSessionFinished:
		p.emit(renderResults(p.course, p.difficulty, *e.Results), buildResultsKeyboard(p.token), true, false)
		if p.onFinish != nil {
			p.onFinish()
		}
	}
}

func (p *presenter) renderQuestion(droppable bool) {
	p.lastRender = p.clock.Now()
	p.lastSeconds = p.view.Timer.Seconds()
	p.emit(renderQuestion(p.view), buildOptionsKeyboard(p.token, p.view.Round, p.view.Question), false, droppable)
}

func (p *presenter) emit(text string, kb *tgbotapi.InlineKeyboardMarkup, fresh, droppable bool) {
	p.push(renderOp{Text: text, Keyboard: kb, Fresh: fresh, Droppable: droppable})
}
