package betting

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPlayerInvalidBetAmount = errors.New("player: invalid bet amount")
	ErrPlayerInsufficientChips = errors.New("player: insufficient chips")
)

// PokerPlayer is the per-player chip ledger for one seat. The ID is a stable
// identifier; every identity-keyed collection in this module (pot
// eligibility, missed blinds, time banks) uses it instead of the display
// name, which is not guaranteed unique at a table.
type PokerPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`

	Statistics PlayerActionStatistics `json:"statistics"`

	chipStack  int64
	currentBet int64
	hasFolded  bool
	isAllIn    bool
}

func NewPokerPlayer(name string, seat int, buyIn int64) *PokerPlayer {
	return NewPokerPlayerWithID(uuid.NewString(), name, seat, buyIn)
}

// NewPokerPlayerWithID seats a player under a caller-supplied stable ID,
// e.g. when restoring from a snapshot.
func NewPokerPlayerWithID(id, name string, seat int, buyIn int64) *PokerPlayer {
	return &PokerPlayer{
		ID:        id,
		Name:      name,
		Seat:      seat,
		chipStack: buyIn,
	}
}

func (p *PokerPlayer) Chips() int64 {
	return p.chipStack
}

// CurrentBet is the amount committed on the current street only.
func (p *PokerPlayer) CurrentBet() int64 {
	return p.currentBet
}

func (p *PokerPlayer) HasFolded() bool {
	return p.hasFolded
}

func (p *PokerPlayer) IsAllIn() bool {
	return p.isAllIn
}

// CanAct reports whether the player can still take voluntary actions this
// hand.
func (p *PokerPlayer) CanAct() bool {
	return !p.hasFolded && !p.isAllIn
}

// PlaceBet moves amount chips from the stack into the player's street bet.
// Betting the entire stack marks the player all-in.
func (p *PokerPlayer) PlaceBet(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrPlayerInvalidBetAmount, amount)
	}
	if amount > p.chipStack {
		return fmt.Errorf("%w: bet %d with stack %d", ErrPlayerInsufficientChips, amount, p.chipStack)
	}

	p.chipStack -= amount
	p.currentBet += amount
	if p.chipStack == 0 && !p.hasFolded {
		p.isAllIn = true
	}
	return nil
}

func (p *PokerPlayer) Fold() {
	p.hasFolded = true
}

// AddChips credits winnings or a rebuy to the stack.
func (p *PokerPlayer) AddChips(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrPlayerInvalidBetAmount, amount)
	}
	p.chipStack += amount
	if p.chipStack > 0 && !p.hasFolded {
		p.isAllIn = false
	}
	return nil
}

// ResetCurrentBet zeroes the street bet between betting rounds. The stack is
// untouched.
func (p *PokerPlayer) ResetCurrentBet() {
	p.currentBet = 0
}

// ResetForNewHand clears all per-hand state at the start of a hand.
func (p *PokerPlayer) ResetForNewHand() {
	p.currentBet = 0
	p.hasFolded = false
	p.isAllIn = false
	p.Statistics = PlayerActionStatistics{}
}
