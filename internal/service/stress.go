package service

import (
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// StressInjector decides whether a round gets a stress event, when it fires
// and which one.
type StressInjector struct {
	rng      Random
	settings StressSettings
	catalog  []entities.StressEvent
}

// NewStressInjector creates an injector drawing from entities.StressCatalog.
func NewStressInjector(rng Random, settings StressSettings) *StressInjector {
	return &StressInjector{
		rng:      rng,
		settings: settings,
		catalog:  entities.StressCatalog,
	}
}

// Plan returns the offset from round start at which the round's event fires.
// Rounds no longer than the headroom never get one; otherwise the offset is
// uniform in [0, d-headroom) so the event is visible before the round can end.
func (i *StressInjector) Plan(d time.Duration) (time.Duration, bool) {
	window := d - i.settings.Headroom
	if window <= 0 {
		return 0, false
	}
	if i.rng.Float64() >= i.settings.Probability {
		return 0, false
	}
	return time.Duration(i.rng.Float64() * float64(window)), true
}

// Pick draws one event from the catalog.
func (i *StressInjector) Pick() entities.StressEvent {
	return i.catalog[i.rng.Intn(len(i.catalog))]
}

// Display returns how long an event message stays visible.
func (i *StressInjector) Display() time.Duration {
	return i.settings.Display
}
