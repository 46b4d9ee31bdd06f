package betting

// BettingStructure selects the sizing rules for a table. The set is closed:
// a table picks one structure at creation time and fixed-limit tables switch
// increments between streets via ForStage.
type BettingStructure string

const (
	BettingStructure_NoLimit    BettingStructure = "no_limit"
	BettingStructure_PotLimit   BettingStructure = "pot_limit"
	BettingStructure_FixedLimit BettingStructure = "fixed_limit"
)

// BetContext carries everything a strategy needs to size a bet or raise.
// All amounts are chip totals for the current street: an "amount" passed to
// IsValidBet/IsValidRaise is the total the player would have committed this
// street after the action, not the increment.
type BetContext struct {
	BigBlind         int64 `json:"big_blind"`
	CurrentBet       int64 `json:"current_bet"`
	LastRaiseAmount  int64 `json:"last_raise_amount"`
	PlayerStack      int64 `json:"player_stack"`
	CurrentPot       int64 `json:"current_pot"`
	PlayerCurrentBet int64 `json:"player_current_bet"`
}

// AmountToCall is the outstanding amount the player must match.
func (ctx BetContext) AmountToCall() int64 {
	toCall := ctx.CurrentBet - ctx.PlayerCurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// AllInTotal is the street total the player reaches by committing the whole
// stack. An all-in for less than any nominal minimum is always a valid
// action; this is the universal escape hatch for short stacks.
func (ctx BetContext) AllInTotal() int64 {
	return ctx.PlayerCurrentBet + ctx.PlayerStack
}

// BettingStrategy is a pure rule set for legal bet and raise sizing. No
// implementation has side effects.
type BettingStrategy interface {
	Name() string
	MinBet(ctx BetContext) int64
	MaxBet(ctx BetContext) int64
	MinRaise(ctx BetContext) int64
	MaxRaise(ctx BetContext) int64
	IsValidBet(ctx BetContext, amount int64) bool
	IsValidRaise(ctx BetContext, amount int64) bool
}

// NewBettingStrategy returns the strategy for a structure. Fixed-limit
// tables start on the small bet; call ForStage to switch.
func NewBettingStrategy(structure BettingStructure, smallBet, bigBet int64) BettingStrategy {
	switch structure {
	case BettingStructure_PotLimit:
		return &PotLimitStrategy{}
	case BettingStructure_FixedLimit:
		return &FixedLimitStrategy{SmallBet: smallBet, BigBet: bigBet}
	default:
		return &NoLimitStrategy{}
	}
}

// NoLimitStrategy allows any bet from the big blind up to the full stack.
type NoLimitStrategy struct{}

func (s *NoLimitStrategy) Name() string { return string(BettingStructure_NoLimit) }

func (s *NoLimitStrategy) MinBet(ctx BetContext) int64 {
	return ctx.BigBlind
}

func (s *NoLimitStrategy) MaxBet(ctx BetContext) int64 {
	return ctx.AllInTotal()
}

func (s *NoLimitStrategy) MinRaise(ctx BetContext) int64 {
	raise := ctx.LastRaiseAmount
	if raise < ctx.BigBlind {
		raise = ctx.BigBlind
	}
	return ctx.CurrentBet + raise
}

func (s *NoLimitStrategy) MaxRaise(ctx BetContext) int64 {
	return ctx.AllInTotal()
}

func (s *NoLimitStrategy) IsValidBet(ctx BetContext, amount int64) bool {
	if amount <= 0 || amount > ctx.AllInTotal() {
		return false
	}
	if amount == ctx.AllInTotal() {
		return true
	}
	return amount >= s.MinBet(ctx)
}

func (s *NoLimitStrategy) IsValidRaise(ctx BetContext, amount int64) bool {
	if amount <= ctx.CurrentBet || amount > ctx.AllInTotal() {
		return false
	}
	if amount == ctx.AllInTotal() {
		return true
	}
	return amount >= s.MinRaise(ctx)
}

// PotLimitStrategy caps bets at the pot and raises at the pot after the
// call (currentBet + pot + amountToCall), both limited by the stack.
type PotLimitStrategy struct{}

func (s *PotLimitStrategy) Name() string { return string(BettingStructure_PotLimit) }

func (s *PotLimitStrategy) MinBet(ctx BetContext) int64 {
	return ctx.BigBlind
}

func (s *PotLimitStrategy) MaxBet(ctx BetContext) int64 {
	max := ctx.CurrentPot
	if max < ctx.BigBlind {
		max = ctx.BigBlind
	}
	if allIn := ctx.AllInTotal(); max > allIn {
		max = allIn
	}
	return max
}

func (s *PotLimitStrategy) MinRaise(ctx BetContext) int64 {
	raise := ctx.LastRaiseAmount
	if raise < ctx.BigBlind {
		raise = ctx.BigBlind
	}
	return ctx.CurrentBet + raise
}

func (s *PotLimitStrategy) MaxRaise(ctx BetContext) int64 {
	max := ctx.CurrentBet + ctx.CurrentPot + ctx.AmountToCall()
	if allIn := ctx.AllInTotal(); max > allIn {
		max = allIn
	}
	return max
}

func (s *PotLimitStrategy) IsValidBet(ctx BetContext, amount int64) bool {
	if amount <= 0 || amount > ctx.AllInTotal() {
		return false
	}
	if amount == ctx.AllInTotal() {
		// An all-in above the pot cap is still valid when it is the
		// player's entire stack.
		return true
	}
	return amount >= s.MinBet(ctx) && amount <= s.MaxBet(ctx)
}

func (s *PotLimitStrategy) IsValidRaise(ctx BetContext, amount int64) bool {
	if amount <= ctx.CurrentBet || amount > ctx.AllInTotal() {
		return false
	}
	if amount == ctx.AllInTotal() {
		return true
	}
	return amount >= s.MinRaise(ctx) && amount <= s.MaxRaise(ctx)
}

// FixedLimitStrategy pins every bet and raise to a fixed increment: the
// small bet on early streets and the big bet later, switched via ForStage.
type FixedLimitStrategy struct {
	SmallBet  int64 `json:"small_bet"`
	BigBet    int64 `json:"big_bet"`
	UseBigBet bool  `json:"use_big_bet"`
}

func (s *FixedLimitStrategy) Name() string { return string(BettingStructure_FixedLimit) }

// ForStage returns the strategy for the given stage of the hand without
// mutating the receiver.
func (s *FixedLimitStrategy) ForStage(useBigBet bool) *FixedLimitStrategy {
	return &FixedLimitStrategy{
		SmallBet:  s.SmallBet,
		BigBet:    s.BigBet,
		UseBigBet: useBigBet,
	}
}

func (s *FixedLimitStrategy) increment() int64 {
	if s.UseBigBet {
		return s.BigBet
	}
	return s.SmallBet
}

func (s *FixedLimitStrategy) MinBet(ctx BetContext) int64 {
	return s.increment()
}

func (s *FixedLimitStrategy) MaxBet(ctx BetContext) int64 {
	return s.increment()
}

func (s *FixedLimitStrategy) MinRaise(ctx BetContext) int64 {
	return ctx.CurrentBet + s.increment()
}

func (s *FixedLimitStrategy) MaxRaise(ctx BetContext) int64 {
	return ctx.CurrentBet + s.increment()
}

func (s *FixedLimitStrategy) IsValidBet(ctx BetContext, amount int64) bool {
	if amount == ctx.AllInTotal() && amount > 0 && amount < s.increment() {
		return true
	}
	return amount == s.increment() && amount <= ctx.AllInTotal()
}

func (s *FixedLimitStrategy) IsValidRaise(ctx BetContext, amount int64) bool {
	target := ctx.CurrentBet + s.increment()
	if amount == ctx.AllInTotal() && amount > ctx.CurrentBet && amount < target {
		return true
	}
	return amount == target && amount <= ctx.AllInTotal()
}
