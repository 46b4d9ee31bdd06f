package betting

import (
	"github.com/cardroom/betting/pot_manager"
	"github.com/cardroom/betting/seat_manager"
)

const UnsetValue = -1

// Street names used by the standard variants. The engine treats streets as
// opaque labels; variant sequencing lives with the caller.
const (
	Street_Preflop = "preflop"
	Street_Flop    = "flop"
	Street_Turn    = "turn"
	Street_River   = "river"
)

// EngineOptions configures one table's betting engine.
type EngineOptions struct {
	TableID    string           `json:"table_id"`
	MaxSeats   int              `json:"max_seats"`
	Structure  BettingStructure `json:"structure"`
	SmallBlind int64            `json:"small_blind"`
	BigBlind   int64            `json:"big_blind"`
	Ante       int64            `json:"ante"`

	// Fixed-limit increments; ignored by other structures.
	SmallBet int64 `json:"small_bet"`
	BigBet   int64 `json:"big_bet"`

	// ReadyTimeoutSeconds bounds the hand-open ready group; players who
	// have not confirmed by then are auto-readied. Zero skips the ready
	// wait entirely.
	ReadyTimeoutSeconds int `json:"ready_timeout_seconds"`

	// ContinueIntervalSeconds delays the automatic start of the next hand
	// after settlement.
	ContinueIntervalSeconds int `json:"continue_interval_seconds"`
}

func NewDefaultEngineOptions() *EngineOptions {
	return &EngineOptions{
		MaxSeats:                9,
		Structure:               BettingStructure_NoLimit,
		SmallBlind:              5,
		BigBlind:                10,
		ReadyTimeoutSeconds:     15,
		ContinueIntervalSeconds: 1,
	}
}

// PlayerActionStatistics counts a player's actions within one hand.
type PlayerActionStatistics struct {
	ActionTimes int    `json:"action_times"`
	RaiseTimes  int    `json:"raise_times"`
	CallTimes   int    `json:"call_times"`
	CheckTimes  int    `json:"check_times"`
	IsFold      bool   `json:"is_fold"`
	FoldStreet  string `json:"fold_street"`
}

// PlayerSnapshot is the opaque persisted form of a player ledger.
type PlayerSnapshot struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Seat       int                    `json:"seat"`
	Chips      int64                  `json:"chips"`
	CurrentBet int64                  `json:"current_bet"`
	HasFolded  bool                   `json:"has_folded"`
	IsAllIn    bool                   `json:"is_all_in"`
	Statistics PlayerActionStatistics `json:"statistics"`
}

// TableSnapshot is the engine state handed to persistence. Storage backends
// treat it as an opaque document.
type TableSnapshot struct {
	TableID    string                         `json:"table_id"`
	HandNumber int                            `json:"hand_number"`
	Players    []PlayerSnapshot               `json:"players"`
	Pots       []*pot_manager.Pot             `json:"pots"`
	Button     seat_manager.DealerButtonState `json:"button"`
	UpdatedAt  int64                          `json:"updated_at"`
}

func (p *PokerPlayer) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		Seat:       p.Seat,
		Chips:      p.chipStack,
		CurrentBet: p.currentBet,
		HasFolded:  p.hasFolded,
		IsAllIn:    p.isAllIn,
		Statistics: p.Statistics,
	}
}

// RestorePlayer rebuilds a ledger from its persisted form.
func RestorePlayer(snapshot PlayerSnapshot) *PokerPlayer {
	p := NewPokerPlayerWithID(snapshot.ID, snapshot.Name, snapshot.Seat, snapshot.Chips)
	p.currentBet = snapshot.CurrentBet
	p.hasFolded = snapshot.HasFolded
	p.isAllIn = snapshot.IsAllIn
	p.Statistics = snapshot.Statistics
	return p
}
