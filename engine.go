package betting

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/d-protocol/syncsaga"
	"github.com/d-protocol/timebank"
	"github.com/sirupsen/logrus"

	"github.com/cardroom/betting/pot_manager"
	"github.com/cardroom/betting/seat_manager"
)

var (
	ErrEngineInvalidSettings    = errors.New("engine: invalid engine settings")
	ErrEnginePlayerNotFound     = errors.New("engine: player not found")
	ErrEngineRoundInProgress    = errors.New("engine: a betting round is already in progress")
	ErrEngineRoundNotInProgress = errors.New("engine: no betting round in progress")
	ErrEngineRoundNotComplete   = errors.New("engine: betting round is not complete")
	ErrEngineReleased           = errors.New("engine: engine has been released")
)

// ActionType is a player's betting action.
type ActionType string

const (
	Action_Check ActionType = "check"
	Action_Bet   ActionType = "bet"
	Action_Call  ActionType = "call"
	Action_Raise ActionType = "raise"
	Action_Fold  ActionType = "fold"
	Action_AllIn ActionType = "allin"
)

// AvailableActions describes what the current actor may legally do, with
// the bounds for each sizing decision.
type AvailableActions struct {
	CanCheck bool `json:"can_check"`
	CanBet   bool `json:"can_bet"`
	CanCall  bool `json:"can_call"`
	CanRaise bool `json:"can_raise"`
	CanFold  bool `json:"can_fold"`
	CanAllIn bool `json:"can_all_in"`

	MinBet     int64 `json:"min_bet"`
	MaxBet     int64 `json:"max_bet"`
	CallAmount int64 `json:"call_amount"`
	MinRaise   int64 `json:"min_raise"`
	MaxRaise   int64 `json:"max_raise"`
}

// ActionResult reports the outcome of one ProcessAction call. Illegal
// actions come back with Success=false and a reason, never an error: the
// caller renders the reason and lets the player retry.
type ActionResult struct {
	Success       bool       `json:"success"`
	Reason        string     `json:"reason,omitempty"`
	PlayerID      string     `json:"player_id"`
	Action        ActionType `json:"action"`
	Amount        int64      `json:"amount"`
	RoundComplete bool       `json:"round_complete"`
	HandComplete  bool       `json:"hand_complete"`
	PotTotal      int64      `json:"pot_total"`
}

type BettingEngineOpt func(*bettingEngine)

type BettingEngine interface {
	// Events
	OnRoundStarted(fn func(RoundStartedEvent))
	OnTurnStarted(fn func(TurnStartedEvent))
	OnActionTaken(fn func(ActionTakenEvent))
	OnRoundCompleted(fn func(RoundCompletedEvent))
	OnEngineError(fn func(tableID string, err error))

	// Hand Actions
	OpenHand() error
	PlayerReady(playerID string) error
	SettleHand(selector pot_manager.WinnerSelector) ([]pot_manager.PotAward, error)
	SettleHandSplit(sevensSelector, highHandSelector pot_manager.WinnerSelector) (*pot_manager.SplitAwardResult, error)
	ContinueHand() error
	ReleaseEngine() error

	// Round Actions
	StartRound(streetName string, initialBet int64, forcedActorIndex int) error
	SetStrategy(strategy BettingStrategy) error
	ProcessAction(playerID string, action ActionType, amount int64) *ActionResult
	ProcessDefaultAction() *ActionResult
	ProcessTimeoutAction(playerID string, generation uint64) *ActionResult
	GetAvailableActions() AvailableActions
	IsValidAction(playerID string, action ActionType, amount int64) (bool, string)
	ResetPlayerBets()
	CalculateSidePots() []*pot_manager.Pot
	ReturnUncalledBet() (string, int64)

	// State
	Generation() uint64
	CurrentBet() int64
	IsRoundComplete() bool
	PlayersInHand() int
	ActivePlayers() int
	CurrentPlayer() *PokerPlayer
	Players() []*PokerPlayer
	FindPlayer(playerID string) *PokerPlayer
	PotManager() *pot_manager.PotManager
	BlindService() *BlindPostingService
	ButtonState() seat_manager.DealerButtonState
	HandNumber() int
	Snapshot() *TableSnapshot
}

type bettingEngine struct {
	lock        sync.Mutex
	options     *EngineOptions
	players     []*PokerPlayer
	strategy    BettingStrategy
	pm          *pot_manager.PotManager
	buttons     *seat_manager.DealerButtonService
	buttonState seat_manager.DealerButtonState
	blinds      *BlindPostingService
	round       *BettingRound
	rg          *syncsaga.ReadyGroup
	tb          *timebank.TimeBank
	logger      *logrus.Logger
	callbacks   *bettingEngineCallbacks
	generation  uint64
	handOpened  bool
	isReleased  bool
}

func NewBettingEngine(options *EngineOptions, players []*PokerPlayer, opts ...BettingEngineOpt) (BettingEngine, error) {
	if options == nil || options.BigBlind <= 0 || options.MaxSeats <= 0 {
		return nil, ErrEngineInvalidSettings
	}
	if len(players) > options.MaxSeats {
		return nil, ErrEngineInvalidSettings
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	e := &bettingEngine{
		options:   options,
		players:   players,
		strategy:  NewBettingStrategy(options.Structure, options.SmallBet, options.BigBet),
		pm:        pot_manager.NewPotManager(),
		buttons:   seat_manager.NewDealerButtonService(),
		tb:        timebank.NewTimeBank(),
		logger:    logger,
		callbacks: newBettingEngineCallbacks(),
	}
	e.blinds = NewBlindPostingService(e.logger)
	e.buttonState = seat_manager.DealerButtonState{ButtonPosition: UnsetValue}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// WithStrategy overrides the strategy derived from the engine options at
// construction time.
func WithStrategy(strategy BettingStrategy) BettingEngineOpt {
	return func(e *bettingEngine) {
		e.strategy = strategy
	}
}

// SetStrategy swaps the sizing rules between streets, e.g. moving a
// fixed-limit table onto the big bet for turn and river via ForStage.
// Rejected while a betting round is in progress.
func (e *bettingEngine) SetStrategy(strategy BettingStrategy) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if strategy == nil {
		return ErrEngineInvalidSettings
	}
	if e.round != nil && e.round.State.Status == RoundStatus_InProgress {
		return ErrEngineRoundInProgress
	}
	e.strategy = strategy
	return nil
}

func WithLogger(logger *logrus.Logger) BettingEngineOpt {
	return func(e *bettingEngine) {
		e.logger = logger
		e.blinds = NewBlindPostingService(logger)
	}
}

func (e *bettingEngine) OnRoundStarted(fn func(RoundStartedEvent)) {
	e.callbacks.OnRoundStarted = fn
}

func (e *bettingEngine) OnTurnStarted(fn func(TurnStartedEvent)) {
	e.callbacks.OnTurnStarted = fn
}

func (e *bettingEngine) OnActionTaken(fn func(ActionTakenEvent)) {
	e.callbacks.OnActionTaken = fn
}

func (e *bettingEngine) OnRoundCompleted(fn func(RoundCompletedEvent)) {
	e.callbacks.OnRoundCompleted = fn
}

func (e *bettingEngine) OnEngineError(fn func(tableID string, err error)) {
	e.callbacks.OnEngineError = fn
}

func (e *bettingEngine) ReleaseEngine() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.isReleased = true
	e.tb.Cancel()
	return nil
}

// StartRound opens one street of betting. initialBet seeds the current bet
// with an already-posted forced bet; forcedActorIndex overrides the default
// first-to-act (first active seat clockwise of the button). Starting a
// round with fewer than two players in the hand is a caller bug.
func (e *bettingEngine) StartRound(streetName string, initialBet int64, forcedActorIndex int) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.startRound(streetName, initialBet, forcedActorIndex)
}

func (e *bettingEngine) startRound(streetName string, initialBet int64, forcedActorIndex int) error {
	if e.isReleased {
		return ErrEngineReleased
	}
	if e.round != nil && e.round.State.Status == RoundStatus_InProgress {
		return ErrEngineRoundInProgress
	}
	if e.playersInHand() < 2 {
		panic(fmt.Sprintf("engine: cannot start a betting round with %d players in hand", e.playersInHand()))
	}

	e.round = NewBettingRound(e.players)

	firstActor := forcedActorIndex
	if firstActor == UnsetValue {
		firstActor = e.defaultFirstActor()
	}
	if firstActor == UnsetValue {
		// Nobody can act (everyone is all-in); the street opens and
		// closes immediately.
		e.round.Start(streetName, initialBet, e.options.BigBlind, UnsetValue)
		e.completeRound()
		return nil
	}

	e.round.Start(streetName, initialBet, e.options.BigBlind, firstActor)
	e.generation++

	e.logger.WithFields(logrus.Fields{
		"table":  e.options.TableID,
		"street": streetName,
		"bet":    initialBet,
	}).Info("betting round started")

	e.callbacks.OnRoundStarted(RoundStartedEvent{
		TableID:    e.options.TableID,
		HandNumber: e.buttonState.HandNumber,
		StreetName: streetName,
		CurrentBet: initialBet,
		PotTotal:   e.pm.Total(),
	})
	e.emitTurnStarted()
	return nil
}

// defaultFirstActor returns the index of the first player who can act,
// clockwise of the button.
func (e *bettingEngine) defaultFirstActor() int {
	activeSeats := make([]int, 0, len(e.players))
	for _, p := range e.players {
		if p.CanAct() {
			activeSeats = append(activeSeats, p.Seat)
		}
	}
	if len(activeSeats) == 0 {
		return UnsetValue
	}

	button := e.buttonState.ButtonPosition
	if button == UnsetValue {
		button = e.options.MaxSeats - 1
	}
	seat := e.buttons.GetFirstToActPostFlop(button, activeSeats, e.options.MaxSeats)
	return e.findPlayerIdxBySeat(seat)
}

// ProcessAction validates and applies one player action. Validation
// failures come back as unsuccessful results, never errors or panics.
func (e *bettingEngine) ProcessAction(playerID string, action ActionType, amount int64) *ActionResult {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.processAction(playerID, action, amount)
}

func (e *bettingEngine) processAction(playerID string, action ActionType, amount int64) *ActionResult {
	fail := func(reason string) *ActionResult {
		return &ActionResult{
			Success:  false,
			Reason:   reason,
			PlayerID: playerID,
			Action:   action,
			Amount:   amount,
			PotTotal: e.pm.Total(),
		}
	}

	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return fail("no betting round in progress")
	}

	actor := e.round.CurrentActor()
	if actor == nil || actor.ID != playerID {
		return fail("acting out of turn")
	}

	ctx := e.betContextFor(actor)
	actorIdx := e.round.State.CurrentActorIndex

	var increment int64
	var applied ActionType = action

	switch action {
	case Action_Check:
		if ctx.AmountToCall() != 0 {
			return fail("cannot check: there is an outstanding bet to match")
		}

	case Action_Fold:
		if ctx.AmountToCall() == 0 {
			return fail("cannot fold: no outstanding bet to decline")
		}
		actor.Fold()
		e.pm.RemovePlayerEligibility(actor.ID)

	case Action_Call:
		toCall := ctx.AmountToCall()
		if toCall == 0 {
			return fail("cannot call: no outstanding bet")
		}
		increment = toCall
		if increment > actor.Chips() {
			increment = actor.Chips()
		}

	case Action_Bet:
		if e.round.State.CurrentBet != 0 {
			return fail("cannot bet: a bet is already outstanding, raise instead")
		}
		if !e.strategy.IsValidBet(ctx, amount) {
			return fail(fmt.Sprintf("invalid bet amount %d (min %d, max %d)", amount, e.strategy.MinBet(ctx), e.strategy.MaxBet(ctx)))
		}
		increment = amount - actor.CurrentBet()

	case Action_Raise:
		if e.round.State.CurrentBet == 0 {
			return fail("cannot raise: no bet outstanding, bet instead")
		}
		if !e.strategy.IsValidRaise(ctx, amount) {
			return fail(fmt.Sprintf("invalid raise to %d (min %d, max %d)", amount, e.strategy.MinRaise(ctx), e.strategy.MaxRaise(ctx)))
		}
		increment = amount - actor.CurrentBet()

	case Action_AllIn:
		increment = actor.Chips()
		if increment == 0 {
			return fail("cannot go all-in with an empty stack")
		}

	default:
		return fail(fmt.Sprintf("unknown action %q", action))
	}

	if increment > 0 {
		if err := actor.PlaceBet(increment); err != nil {
			return fail(err.Error())
		}
		e.pm.AddContribution(actor.ID, increment)
	}

	prevBet := e.round.State.CurrentBet
	newTotal := actor.CurrentBet()
	if newTotal > prevBet {
		e.round.ApplyRaise(actorIdx, newTotal)
	}
	e.round.MarkActed(actorIdx)
	e.bumpStatistics(actor, applied, newTotal > prevBet)
	e.generation++

	result := &ActionResult{
		Success:  true,
		PlayerID: actor.ID,
		Action:   applied,
		Amount:   newTotal,
		PotTotal: e.pm.Total(),
	}
	if applied == Action_Fold {
		result.Amount = 0
	}

	e.logger.WithFields(logrus.Fields{
		"table":  e.options.TableID,
		"player": actor.ID,
		"action": string(applied),
		"amount": result.Amount,
		"pot":    result.PotTotal,
	}).Info("action processed")

	if e.round.IsComplete() {
		result.RoundComplete = true
		result.HandComplete = e.playersInHand() <= 1
	}

	// The action's own event goes out before any turn or completion event
	// it triggers, so subscribers see a causal stream.
	e.callbacks.OnActionTaken(ActionTakenEvent{
		TableID:    e.options.TableID,
		HandNumber: e.buttonState.HandNumber,
		StreetName: e.round.State.StreetName,
		Result:     *result,
	})

	if result.RoundComplete {
		e.completeRound()
	} else {
		e.round.AdvanceActor()
		e.emitTurnStarted()
	}
	return result
}

func (e *bettingEngine) completeRound() {
	e.round.Finish()
	e.generation++
	e.callbacks.OnRoundCompleted(RoundCompletedEvent{
		TableID:      e.options.TableID,
		HandNumber:   e.buttonState.HandNumber,
		StreetName:   e.round.State.StreetName,
		PotTotal:     e.pm.Total(),
		HandComplete: e.playersInHand() <= 1,
	})
}

func (e *bettingEngine) emitTurnStarted() {
	actor := e.round.CurrentActor()
	if actor == nil {
		return
	}
	e.callbacks.OnTurnStarted(TurnStartedEvent{
		TableID:    e.options.TableID,
		StreetName: e.round.State.StreetName,
		PlayerID:   actor.ID,
		Seat:       actor.Seat,
		Generation: e.generation,
		Available:  e.availableActionsFor(actor),
	})
}

// ProcessDefaultAction applies the canonical timeout fallback for the
// current actor: check when legal, otherwise fold.
func (e *bettingEngine) ProcessDefaultAction() *ActionResult {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.processDefaultAction()
}

func (e *bettingEngine) processDefaultAction() *ActionResult {
	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return &ActionResult{Success: false, Reason: "no betting round in progress"}
	}
	actor := e.round.CurrentActor()
	if actor == nil {
		return &ActionResult{Success: false, Reason: "no current actor"}
	}

	if e.betContextFor(actor).AmountToCall() == 0 {
		return e.processAction(actor.ID, Action_Check, 0)
	}
	return e.processAction(actor.ID, Action_Fold, 0)
}

// ProcessTimeoutAction is the timer expiry entry point. The generation was
// captured when the player's turn started; if a manual action or round
// completion moved the engine on since, the callback is a silent no-op.
func (e *bettingEngine) ProcessTimeoutAction(playerID string, generation uint64) *ActionResult {
	e.lock.Lock()
	defer e.lock.Unlock()

	if generation != e.generation {
		return &ActionResult{Success: false, Reason: "stale timer expiry", PlayerID: playerID}
	}
	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return &ActionResult{Success: false, Reason: "stale timer expiry", PlayerID: playerID}
	}
	actor := e.round.CurrentActor()
	if actor == nil || actor.ID != playerID {
		return &ActionResult{Success: false, Reason: "stale timer expiry", PlayerID: playerID}
	}

	return e.processDefaultAction()
}

// GetAvailableActions derives the current actor's legal actions and sizing
// bounds from the round state and the active strategy.
func (e *bettingEngine) GetAvailableActions() AvailableActions {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return AvailableActions{}
	}
	actor := e.round.CurrentActor()
	if actor == nil {
		return AvailableActions{}
	}
	return e.availableActionsFor(actor)
}

func (e *bettingEngine) availableActionsFor(actor *PokerPlayer) AvailableActions {
	ctx := e.betContextFor(actor)
	toCall := ctx.AmountToCall()

	actions := AvailableActions{
		CanCheck:   toCall == 0,
		CanBet:     e.round.State.CurrentBet == 0 && actor.Chips() > 0,
		CanCall:    toCall > 0 && actor.Chips() > 0,
		CanRaise:   e.round.State.CurrentBet > 0 && actor.Chips() > toCall,
		CanFold:    toCall > 0,
		CanAllIn:   actor.Chips() > 0,
		MinBet:     e.strategy.MinBet(ctx),
		MaxBet:     e.strategy.MaxBet(ctx),
		MinRaise:   e.strategy.MinRaise(ctx),
		MaxRaise:   e.strategy.MaxRaise(ctx),
		CallAmount: toCall,
	}
	if actions.CallAmount > actor.Chips() {
		actions.CallAmount = actor.Chips()
	}
	return actions
}

// IsValidAction reports whether the action would succeed, with the reason
// it would not.
func (e *bettingEngine) IsValidAction(playerID string, action ActionType, amount int64) (bool, string) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return false, "no betting round in progress"
	}
	actor := e.round.CurrentActor()
	if actor == nil || actor.ID != playerID {
		return false, "acting out of turn"
	}

	ctx := e.betContextFor(actor)
	switch action {
	case Action_Check:
		if ctx.AmountToCall() != 0 {
			return false, "cannot check: there is an outstanding bet to match"
		}
	case Action_Fold:
		if ctx.AmountToCall() == 0 {
			return false, "cannot fold: no outstanding bet to decline"
		}
	case Action_Call:
		if ctx.AmountToCall() == 0 {
			return false, "cannot call: no outstanding bet"
		}
	case Action_Bet:
		if e.round.State.CurrentBet != 0 {
			return false, "cannot bet: a bet is already outstanding"
		}
		if !e.strategy.IsValidBet(ctx, amount) {
			return false, "invalid bet amount"
		}
	case Action_Raise:
		if e.round.State.CurrentBet == 0 {
			return false, "cannot raise: no bet outstanding"
		}
		if !e.strategy.IsValidRaise(ctx, amount) {
			return false, "invalid raise amount"
		}
	case Action_AllIn:
		if actor.Chips() == 0 {
			return false, "cannot go all-in with an empty stack"
		}
	default:
		return false, "unknown action"
	}
	return true, ""
}

// ResetPlayerBets zeroes every player's street bet between streets. Stacks
// and the pot are untouched.
func (e *bettingEngine) ResetPlayerBets() {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, p := range e.players {
		p.ResetCurrentBet()
	}
}

// CalculateSidePots partitions the pot by all-in stake levels using the
// current contribution snapshot.
func (e *bettingEngine) CalculateSidePots() []*pot_manager.Pot {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.calculateSidePots()
}

func (e *bettingEngine) calculateSidePots() []*pot_manager.Pot {
	allIn := make(map[string]bool, len(e.players))
	for _, p := range e.players {
		allIn[p.ID] = p.IsAllIn()
	}
	return e.pm.CalculateSidePots(e.pm.Stakes(allIn))
}

// ReturnUncalledBet refunds the portion of the hand's highest contribution
// that nobody matched, crediting it back to the bettor's stack.
func (e *bettingEngine) ReturnUncalledBet() (string, int64) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.returnUncalledBet()
}

func (e *bettingEngine) returnUncalledBet() (string, int64) {
	playerID, amount := e.pm.ReturnUncalled()
	if amount == 0 {
		return "", 0
	}
	if player := e.findPlayer(playerID); player != nil {
		player.AddChips(amount)
	}
	return playerID, amount
}

func (e *bettingEngine) Generation() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.generation
}

func (e *bettingEngine) CurrentBet() int64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.round == nil {
		return 0
	}
	return e.round.State.CurrentBet
}

func (e *bettingEngine) IsRoundComplete() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.round != nil && e.round.State.Status == RoundStatus_Complete
}

func (e *bettingEngine) PlayersInHand() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.playersInHand()
}

func (e *bettingEngine) playersInHand() int {
	count := 0
	for _, p := range e.players {
		if !p.HasFolded() {
			count++
		}
	}
	return count
}

func (e *bettingEngine) ActivePlayers() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	count := 0
	for _, p := range e.players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

func (e *bettingEngine) CurrentPlayer() *PokerPlayer {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.round == nil || e.round.State.Status != RoundStatus_InProgress {
		return nil
	}
	return e.round.CurrentActor()
}

func (e *bettingEngine) Players() []*PokerPlayer {
	return e.players
}

func (e *bettingEngine) FindPlayer(playerID string) *PokerPlayer {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.findPlayer(playerID)
}

func (e *bettingEngine) findPlayer(playerID string) *PokerPlayer {
	for _, p := range e.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (e *bettingEngine) findPlayerIdxBySeat(seat int) int {
	for i, p := range e.players {
		if p.Seat == seat {
			return i
		}
	}
	return UnsetValue
}

func (e *bettingEngine) PotManager() *pot_manager.PotManager {
	return e.pm
}

func (e *bettingEngine) BlindService() *BlindPostingService {
	return e.blinds
}

func (e *bettingEngine) ButtonState() seat_manager.DealerButtonState {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.buttonState
}

func (e *bettingEngine) HandNumber() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.buttonState.HandNumber
}

// Snapshot captures the engine state for persistence.
func (e *bettingEngine) Snapshot() *TableSnapshot {
	e.lock.Lock()
	defer e.lock.Unlock()

	players := make([]PlayerSnapshot, 0, len(e.players))
	for _, p := range e.players {
		players = append(players, p.Snapshot())
	}
	return &TableSnapshot{
		TableID:    e.options.TableID,
		HandNumber: e.buttonState.HandNumber,
		Players:    players,
		Pots:       e.pm.Pots(),
		Button:     e.buttonState,
		UpdatedAt:  time.Now().Unix(),
	}
}

func (e *bettingEngine) betContextFor(actor *PokerPlayer) BetContext {
	return BetContext{
		BigBlind:         e.options.BigBlind,
		CurrentBet:       e.round.State.CurrentBet,
		LastRaiseAmount:  e.round.State.LastRaiseAmount,
		PlayerStack:      actor.Chips(),
		CurrentPot:       e.pm.Total(),
		PlayerCurrentBet: actor.CurrentBet(),
	}
}

func (e *bettingEngine) bumpStatistics(actor *PokerPlayer, action ActionType, raisedTheBet bool) {
	actor.Statistics.ActionTimes++
	switch action {
	case Action_Raise, Action_Bet:
		actor.Statistics.RaiseTimes++
	case Action_Call:
		actor.Statistics.CallTimes++
	case Action_Check:
		actor.Statistics.CheckTimes++
	case Action_Fold:
		actor.Statistics.IsFold = true
		actor.Statistics.FoldStreet = e.round.State.StreetName
	case Action_AllIn:
		if raisedTheBet {
			actor.Statistics.RaiseTimes++
		} else {
			actor.Statistics.CallTimes++
		}
	}
}
