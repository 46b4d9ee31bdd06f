package betting

import (
	"errors"
	"time"

	"github.com/d-protocol/syncsaga"
	"github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"

	"github.com/cardroom/betting/pot_manager"
)

var (
	ErrEngineHandInProgress      = errors.New("engine: a hand is already in progress")
	ErrEngineHandNotOpening      = errors.New("engine: no hand is waiting for players to be ready")
	ErrEngineInsufficientPlayers = errors.New("engine: not enough funded players to open a hand")
)

// OpenHand starts a new hand. With a ready timeout configured the hand
// waits for every funded player to confirm readiness, auto-readying the
// stragglers when the timeout lapses; otherwise the hand begins
// immediately.
func (e *bettingEngine) OpenHand() error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.isReleased {
		return ErrEngineReleased
	}
	if e.handOpened {
		return ErrEngineHandInProgress
	}
	if e.fundedPlayers() < 2 {
		return ErrEngineInsufficientPlayers
	}

	if e.options.ReadyTimeoutSeconds <= 0 {
		return e.beginHand()
	}

	e.rg = syncsaga.NewReadyGroup(
		syncsaga.WithTimeout(e.options.ReadyTimeoutSeconds, func(rg *syncsaga.ReadyGroup) {
			// Auto ready by default
			states := rg.GetParticipantStates()
			for playerIdx, isReady := range states {
				if !isReady {
					rg.Ready(playerIdx)
				}
			}
		}),
	)
	e.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		e.lock.Lock()
		defer e.lock.Unlock()
		if e.isReleased || e.handOpened {
			return
		}
		if err := e.beginHand(); err != nil {
			e.callbacks.OnEngineError(e.options.TableID, err)
		}
	})

	e.rg.ResetParticipants()
	for idx, p := range e.players {
		if p.Chips() > 0 {
			e.rg.Add(int64(idx), false)
		}
	}
	e.rg.Start()
	return nil
}

// PlayerReady marks one player ready during the OpenHand ready wait.
func (e *bettingEngine) PlayerReady(playerID string) error {
	e.lock.Lock()
	rg := e.rg
	if rg == nil {
		e.lock.Unlock()
		return ErrEngineHandNotOpening
	}
	idx := UnsetValue
	for i, p := range e.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	// The ready group completion handler re-acquires the engine lock, so
	// the lock cannot be held across Ready.
	e.lock.Unlock()

	if idx == UnsetValue {
		return ErrEnginePlayerNotFound
	}
	if isReady, exist := rg.GetParticipantStates()[int64(idx)]; exist && !isReady {
		rg.Ready(int64(idx))
	}
	return nil
}

// beginHand resets per-hand state, rotates the button, settles missed-blind
// debt, collects the forced bets and opens the preflop betting round.
// Caller must hold the lock.
func (e *bettingEngine) beginHand() error {
	e.handOpened = true

	for _, p := range e.players {
		p.ResetForNewHand()
	}
	e.pm.Reset()

	occupied := e.fundedSeats()

	// Broke players sit the hand out.
	for _, p := range e.players {
		if p.Chips() == 0 {
			p.Fold()
		}
	}

	if e.buttonState.ButtonPosition == UnsetValue {
		e.buttonState = e.buttons.InitializeButton(occupied)
	} else {
		e.buttonState = e.buttons.AdvanceButton(e.buttonState, occupied, e.options.MaxSeats)
	}

	sbSeat := e.buttons.GetSmallBlindPosition(e.buttonState.ButtonPosition, occupied, e.options.MaxSeats)
	bbSeat := e.buttons.GetBigBlindPosition(e.buttonState.ButtonPosition, occupied, e.options.MaxSeats)

	if e.options.Ante > 0 {
		if _, _, err := e.blinds.CollectAntesFromSeats(e.players, occupied, e.options.Ante, e.pm); err != nil {
			return err
		}
	}

	// Returning players pay their missed-blind debt before the hand's own
	// forced bets. The dead portion goes straight to the pot.
	blindSeats := []int{sbSeat, bbSeat}
	for _, p := range e.players {
		if !p.HasFolded() && !funk.ContainsInt(blindSeats, p.Seat) && e.blinds.HasMissedBlinds(p.ID) {
			if _, _, err := e.blinds.PostMissedBlinds(p, p.Seat, e.options.BigBlind, e.pm); err != nil {
				return err
			}
		}
	}

	if _, _, err := e.blinds.PostBlinds(e.players, sbSeat, bbSeat, e.options.SmallBlind, e.options.BigBlind, e.pm); err != nil {
		return err
	}

	// Posting the big blind through natural rotation settles any debt.
	if bb := findBySeat(e.players, bbSeat); bb != nil {
		e.blinds.ClearMissedBlinds(bb.ID)
	}

	e.logger.WithFields(logrus.Fields{
		"table":  e.options.TableID,
		"hand":   e.buttonState.HandNumber,
		"button": e.buttonState.ButtonPosition,
		"sb":     sbSeat,
		"bb":     bbSeat,
		"pot":    e.pm.Total(),
	}).Info("hand opened")

	firstSeat := e.buttons.GetFirstToActPreFlop(e.buttonState.ButtonPosition, occupied, e.options.MaxSeats)
	return e.startRound(Street_Preflop, e.options.BigBlind, e.findPlayerIdxBySeat(firstSeat))
}

// SettleHand awards the pots once betting is finished. Any uncalled bet is
// refunded first, then the side pots are partitioned and paid out through
// the winner selector. Winners' stacks are credited in place.
func (e *bettingEngine) SettleHand(selector pot_manager.WinnerSelector) ([]pot_manager.PotAward, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.round == nil || e.round.State.Status != RoundStatus_Complete {
		return nil, ErrEngineRoundNotComplete
	}

	e.returnUncalledBet()
	e.calculateSidePots()

	awards, err := e.pm.AwardPots(selector)
	if err != nil {
		return nil, err
	}
	e.creditPayouts(awardPayouts(awards))
	e.handOpened = false

	e.logger.WithFields(logrus.Fields{
		"table": e.options.TableID,
		"hand":  e.buttonState.HandNumber,
		"pots":  len(awards),
	}).Info("hand settled")
	return awards, nil
}

// SettleHandSplit settles a split-pot variant: half the pot to the sevens
// pool, half to the high hand, with the sevens half rolling into the high
// half when nobody qualifies for it.
func (e *bettingEngine) SettleHandSplit(sevensSelector, highHandSelector pot_manager.WinnerSelector) (*pot_manager.SplitAwardResult, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.round == nil || e.round.State.Status != RoundStatus_Complete {
		return nil, ErrEngineRoundNotComplete
	}

	e.returnUncalledBet()

	eligible := make([]string, 0, len(e.players))
	for _, p := range e.players {
		if !p.HasFolded() {
			eligible = append(eligible, p.ID)
		}
	}

	result, err := e.pm.AwardPotsSplit(sevensSelector, highHandSelector, eligible)
	if err != nil {
		return nil, err
	}
	e.creditPayouts(result.Payouts)
	e.handOpened = false

	e.logger.WithFields(logrus.Fields{
		"table":       e.options.TableID,
		"hand":        e.buttonState.HandNumber,
		"sevens_pool": result.SevensPool,
		"high_pool":   result.HighPool,
		"rolled_over": result.SevensPoolRolledOver,
	}).Info("split hand settled")
	return result, nil
}

// ContinueHand schedules the next hand after the configured interval, or
// opens it immediately when no interval is configured.
func (e *bettingEngine) ContinueHand() error {
	e.lock.Lock()
	if e.isReleased {
		e.lock.Unlock()
		return ErrEngineReleased
	}
	interval := e.options.ContinueIntervalSeconds
	e.lock.Unlock()

	if interval <= 0 {
		return e.OpenHand()
	}

	return e.tb.NewTask(time.Duration(interval)*time.Second, func(isCancelled bool) {
		if isCancelled {
			return
		}
		if err := e.OpenHand(); err != nil {
			e.callbacks.OnEngineError(e.options.TableID, err)
		}
	})
}

func (e *bettingEngine) creditPayouts(payouts map[string]int64) {
	for playerID, amount := range payouts {
		if player := e.findPlayer(playerID); player != nil {
			player.AddChips(amount)
		}
	}
}

func awardPayouts(awards []pot_manager.PotAward) map[string]int64 {
	payouts := map[string]int64{}
	for _, award := range awards {
		for playerID, amount := range award.Payouts {
			payouts[playerID] += amount
		}
	}
	return payouts
}

func (e *bettingEngine) fundedPlayers() int {
	count := 0
	for _, p := range e.players {
		if p.Chips() > 0 {
			count++
		}
	}
	return count
}

func (e *bettingEngine) fundedSeats() []int {
	seats := make([]int, 0, len(e.players))
	for _, p := range e.players {
		if p.Chips() > 0 {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}
