package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
	"github.com/airflow-ai/congestion-dashboard/internal/reveal"
)

var ErrDisconnected = errors.New("prediction service is not connected")

// Service is the remote prediction service.
type Service interface {
	Health(ctx context.Context) (*domain.Health, error)
	Analyze(ctx context.Context, in domain.AnalyzeRequest) (*domain.AnalysisResult, error)
	Simulate(ctx context.Context) (*domain.AnalysisResult, error)
}

// Notifier is told about results whose overall risk is CRITICAL.
type Notifier interface {
	NotifyCritical(ctx context.Context, runID string, res *domain.AnalysisResult) error
}

// TelemetrySource supplies the most recent telemetry sample, if any.
type TelemetrySource interface {
	Latest() (domain.TelemetrySample, bool)
}

type Mode string

const (
	ModeManual    Mode = "manual"
	ModeSimulated Mode = "simulated"
)

type Options struct {
	Zones      []domain.Zone
	RevealStep time.Duration
	Location   *time.Location
	Notifier   Notifier
	Telemetry  TelemetrySource
	Now        func() time.Time
}

// State is a point-in-time copy of the controller state.
type State struct {
	Connected bool   `json:"connected"`
	Mode      Mode   `json:"mode"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
	Breaker   string `json:"breaker,omitempty"`
	Revealing bool   `json:"revealing"`
	View      *View  `json:"view"`
}

// breakerReporter is implemented by services guarded by a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// Controller owns the dashboard state. Concurrent analyses are not
// serialized: whichever response is applied last wins. A failed analysis
// keeps the previously displayed result.
type Controller struct {
	svc  Service
	opts Options
	hub  *hub

	mu         sync.RWMutex
	connected  bool
	mode       Mode
	inFlight   int
	errMsg     string
	view       *View
	generation uint64

	// applyMu serializes view swaps. The reveal callback only takes mu, so
	// stopping a player while holding applyMu cannot deadlock.
	applyMu sync.Mutex
	player  *reveal.Player
}

func New(svc Service, opts Options) *Controller {
	if len(opts.Zones) == 0 {
		opts.Zones = domain.DefaultZones()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		svc:  svc,
		opts: opts,
		hub:  newHub(),
		mode: ModeManual,
	}
}

// CheckHealth probes the service and updates the connectivity flag.
func (c *Controller) CheckHealth(ctx context.Context) bool {
	h, err := c.svc.Health(ctx)
	ok := err == nil && h != nil && h.Healthy()
	if err != nil {
		log.Warn().Err(err).Msg("health check failed")
	}

	c.mu.Lock()
	changed := c.connected != ok
	c.connected = ok
	c.mu.Unlock()

	if changed {
		log.Info().Bool("connected", ok).Msg("prediction service connectivity changed")
		c.broadcastStatus()
	}
	return ok
}

// PollHealth probes once immediately, then every interval until ctx is done.
func (c *Controller) PollHealth(ctx context.Context, interval time.Duration) {
	c.CheckHealth(ctx)
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckHealth(ctx)
		}
	}
}

func (c *Controller) SetMode(m Mode) {
	if m != ModeManual && m != ModeSimulated {
		return
	}
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

// ManualDefaults returns the form values to pre-fill: the latest telemetry
// sample when one has arrived, otherwise the built-in defaults.
func (c *Controller) ManualDefaults() domain.ManualInput {
	if c.opts.Telemetry != nil {
		if s, ok := c.opts.Telemetry.Latest(); ok {
			return s.ManualInput()
		}
	}
	return domain.DefaultManualInput()
}

func (c *Controller) AnalyzeManual(ctx context.Context, in domain.ManualInput) error {
	return c.run(ctx, "analyze", func(ctx context.Context) (*domain.AnalysisResult, error) {
		return c.svc.Analyze(ctx, in.Request(c.opts.Now()))
	})
}

func (c *Controller) Simulate(ctx context.Context) error {
	return c.run(ctx, "simulate", c.svc.Simulate)
}

func (c *Controller) run(ctx context.Context, action string, call func(context.Context) (*domain.AnalysisResult, error)) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return ErrDisconnected
	}
	c.inFlight++
	c.errMsg = ""
	c.mu.Unlock()
	c.broadcastStatus()

	res, err := call(ctx)

	c.mu.Lock()
	c.inFlight--
	if err != nil {
		c.errMsg = err.Error()
	}
	c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("analysis request failed")
		c.hub.broadcast(Event{Type: EventError, Error: err.Error(), Loading: c.loading(), Connected: c.isConnected()})
		return err
	}

	c.apply(ctx, res)
	c.broadcastStatus()
	return nil
}

// apply cancels the reveal of the superseded grid, swaps in a freshly
// derived view and starts its reveal.
func (c *Controller) apply(ctx context.Context, res *domain.AnalysisResult) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.player.Stop()
	c.player = nil

	v := buildView(res, c.opts.Zones, c.opts.RevealStep, c.opts.Location)
	v.RunID = uuid.NewString()
	v.ReceivedAt = c.opts.Now()

	c.mu.Lock()
	c.generation++
	gen := c.generation
	v.Generation = gen
	c.view = v
	c.mu.Unlock()

	log.Info().
		Str("run_id", v.RunID).
		Uint64("generation", gen).
		Int("forecast_points", len(res.Forecast)).
		Str("risk_level", string(res.RiskLevel)).
		Msg("analysis applied")

	c.hub.broadcast(Event{Type: EventResult, Generation: gen, Connected: c.isConnected(), Loading: c.loading()})
	c.player = reveal.Play(context.Background(), v.Heatmap.Schedule, func(e reveal.Entry) {
		c.revealCell(gen, e)
	})

	if res.RiskLevel == domain.RiskCritical && c.opts.Notifier != nil {
		if err := c.opts.Notifier.NotifyCritical(ctx, v.RunID, res); err != nil {
			log.Error().Err(err).Str("run_id", v.RunID).Msg("critical alert failed")
		}
	}
}

func (c *Controller) revealCell(gen uint64, e reveal.Entry) {
	c.mu.Lock()
	if c.view == nil || c.view.Generation != gen {
		c.mu.Unlock()
		return
	}
	changed := c.view.Heatmap.Reveal(e.Zone, e.Slot)
	c.mu.Unlock()

	if changed {
		c.hub.broadcast(Event{Type: EventReveal, Generation: gen, Zone: e.Zone, Slot: e.Slot})
	}
}

// waitRevealed blocks until the current reveal finished or ctx is done.
func (c *Controller) waitRevealed(ctx context.Context) error {
	c.applyMu.Lock()
	p := c.player
	c.applyMu.Unlock()
	if p == nil {
		return nil
	}
	select {
	case <-p.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops any running reveal.
func (c *Controller) Close() {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	c.player.Stop()
	c.player = nil
}

func (c *Controller) State() State {
	c.mu.RLock()
	st := State{
		Connected: c.connected,
		Mode:      c.mode,
		Loading:   c.inFlight > 0,
		Error:     c.errMsg,
		View:      c.view.clone(),
	}
	c.mu.RUnlock()

	if st.View != nil {
		st.Revealing = st.View.Heatmap.RevealedCount() < st.View.Heatmap.CellCount()
	}
	if b, ok := c.svc.(breakerReporter); ok {
		st.Breaker = b.BreakerState()
	}
	return st
}

// Subscribe registers for controller events. The returned func unsubscribes
// and closes the channel.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	return c.hub.subscribe(256)
}

func (c *Controller) isConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Controller) loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight > 0
}

func (c *Controller) broadcastStatus() {
	c.mu.RLock()
	ev := Event{Type: EventStatus, Connected: c.connected, Loading: c.inFlight > 0, Error: c.errMsg, Generation: c.generation}
	c.mu.RUnlock()
	c.hub.broadcast(ev)
}
