package timer_service

import (
	"sync"
	"time"
)

// TimerOptions configures the per-table action timer.
type TimerOptions struct {
	DefaultTimeoutSeconds   int  `json:"default_timeout_seconds"`
	WarningThresholdSeconds int  `json:"warning_threshold_seconds"`
	TimeBankSeconds         int  `json:"time_bank_seconds"`
	AutoActOnTimeout        bool `json:"auto_act_on_timeout"`
}

func NewDefaultTimerOptions() *TimerOptions {
	return &TimerOptions{
		DefaultTimeoutSeconds:   30,
		WarningThresholdSeconds: 10,
		TimeBankSeconds:         60,
		AutoActOnTimeout:        true,
	}
}

// TimerEvent is the payload for every timer notification.
type TimerEvent struct {
	PlayerID          string    `json:"player_id"`
	StartedAtUtc      time.Time `json:"started_at_utc"`
	DurationSeconds   int       `json:"duration_seconds"`
	SecondsRemaining  int       `json:"seconds_remaining"`
	TimeBankRemaining int       `json:"time_bank_remaining"`
}

type ActionTimerService interface {
	// Events
	OnTimerStarted(fn func(TimerEvent))
	OnTimerTick(fn func(TimerEvent))
	OnTimerWarning(fn func(TimerEvent))
	OnTimerExpired(fn func(TimerEvent))

	// Timer Actions
	StartTimer(playerID string, onExpired func(playerID string))
	StartTimerWithDuration(playerID string, durationSeconds int, onExpired func(playerID string))
	StopTimer()
	UseTimeBank(playerID string) bool

	// Time Bank Balances
	InitializePlayerTimeBank(playerID string, seconds int)
	GetTimeBankRemaining(playerID string) int
	RemovePlayer(playerID string)
	ResetAllTimeBanks()

	// State
	SecondsRemaining() int
	ActivePlayerID() string

	Dispose()
}

type activeTimer struct {
	playerID  string
	startedAt time.Time
	duration  int
	remaining int
	warned    bool
	bankUsed  bool
	stopped   bool
	onExpired func(playerID string)
}

type actionTimerService struct {
	mu        sync.Mutex
	options   *TimerOptions
	timeBanks map[string]int
	current   *activeTimer
	disposed  bool
	onStarted func(TimerEvent)
	onTick    func(TimerEvent)
	onWarning func(TimerEvent)
	onExpired func(TimerEvent)
}

func NewActionTimerService(options *TimerOptions) ActionTimerService {
	if options == nil {
		options = NewDefaultTimerOptions()
	}
	return &actionTimerService{
		options:   options,
		timeBanks: make(map[string]int),
		onStarted: func(TimerEvent) {},
		onTick:    func(TimerEvent) {},
		onWarning: func(TimerEvent) {},
		onExpired: func(TimerEvent) {},
	}
}

func (ts *actionTimerService) OnTimerStarted(fn func(TimerEvent)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.onStarted = fn
}

func (ts *actionTimerService) OnTimerTick(fn func(TimerEvent)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.onTick = fn
}

func (ts *actionTimerService) OnTimerWarning(fn func(TimerEvent)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.onWarning = fn
}

func (ts *actionTimerService) OnTimerExpired(fn func(TimerEvent)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.onExpired = fn
}

// StartTimer starts the countdown with the configured default duration.
// Any previously running timer for this table is stopped first.
func (ts *actionTimerService) StartTimer(playerID string, onExpired func(playerID string)) {
	ts.StartTimerWithDuration(playerID, ts.options.DefaultTimeoutSeconds, onExpired)
}

func (ts *actionTimerService) StartTimerWithDuration(playerID string, durationSeconds int, onExpired func(playerID string)) {
	ts.mu.Lock()
	if ts.disposed {
		ts.mu.Unlock()
		return
	}
	if ts.current != nil {
		ts.current.stopped = true
		ts.current = nil
	}

	timer := &activeTimer{
		playerID:  playerID,
		startedAt: time.Now().UTC(),
		duration:  durationSeconds,
		remaining: durationSeconds,
		onExpired: onExpired,
	}
	ts.current = timer
	started := ts.onStarted
	event := ts.eventFor(timer)
	ts.mu.Unlock()

	started(event)
	go ts.run(timer)
}

func (ts *actionTimerService) run(timer *activeTimer) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ts.mu.Lock()
		if ts.current != timer || timer.stopped {
			ts.mu.Unlock()
			return
		}

		timer.remaining--
		event := ts.eventFor(timer)

		if timer.remaining <= 0 {
			// Final event for this turn; the engine's round-generation
			// check makes a racing manual action win over this callback.
			ts.current = nil
			expired := ts.onExpired
			fire := timer.onExpired
			ts.mu.Unlock()

			expired(event)
			if ts.options.AutoActOnTimeout && fire != nil {
				fire(timer.playerID)
			}
			return
		}

		var warning func(TimerEvent)
		if !timer.warned && timer.remaining <= ts.options.WarningThresholdSeconds {
			timer.warned = true
			warning = ts.onWarning
		}
		tick := ts.onTick
		ts.mu.Unlock()

		tick(event)
		if warning != nil {
			warning(event)
		}
	}
}

// StopTimer halts the active countdown. Once it returns, no further events
// for that timer will be decided. Idempotent.
func (ts *actionTimerService) StopTimer() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.current != nil {
		ts.current.stopped = true
		ts.current = nil
	}
}

// UseTimeBank adds the player's entire remaining time bank to the active
// countdown. It is usable at most once per started timer and fails when the
// timer belongs to another player or the bank is empty.
func (ts *actionTimerService) UseTimeBank(playerID string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	timer := ts.current
	if timer == nil || timer.playerID != playerID || timer.bankUsed {
		return false
	}

	bank := ts.bankFor(playerID)
	if bank <= 0 {
		return false
	}

	timer.remaining += bank
	timer.duration += bank
	timer.bankUsed = true
	ts.timeBanks[playerID] = 0
	return true
}

func (ts *actionTimerService) InitializePlayerTimeBank(playerID string, seconds int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.timeBanks[playerID] = seconds
}

// GetTimeBankRemaining returns the configured default for players that were
// never initialized; balances survive across hands until reset or removal.
func (ts *actionTimerService) GetTimeBankRemaining(playerID string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.bankFor(playerID)
}

func (ts *actionTimerService) RemovePlayer(playerID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.timeBanks, playerID)
	if ts.current != nil && ts.current.playerID == playerID {
		ts.current.stopped = true
		ts.current = nil
	}
}

func (ts *actionTimerService) ResetAllTimeBanks() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.timeBanks = make(map[string]int)
}

func (ts *actionTimerService) SecondsRemaining() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.current == nil {
		return 0
	}
	return ts.current.remaining
}

func (ts *actionTimerService) ActivePlayerID() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.current == nil {
		return ""
	}
	return ts.current.playerID
}

// Dispose stops the timer and rejects any future starts. Idempotent.
func (ts *actionTimerService) Dispose() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.disposed = true
	if ts.current != nil {
		ts.current.stopped = true
		ts.current = nil
	}
}

func (ts *actionTimerService) bankFor(playerID string) int {
	if bank, exist := ts.timeBanks[playerID]; exist {
		return bank
	}
	return ts.options.TimeBankSeconds
}

func (ts *actionTimerService) eventFor(timer *activeTimer) TimerEvent {
	return TimerEvent{
		PlayerID:          timer.playerID,
		StartedAtUtc:      timer.startedAt,
		DurationSeconds:   timer.duration,
		SecondsRemaining:  timer.remaining,
		TimeBankRemaining: ts.bankFor(timer.playerID),
	}
}
