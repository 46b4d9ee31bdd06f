package betting

// RoundStartedEvent fires once per street, before the first turn.
type RoundStartedEvent struct {
	TableID    string `json:"table_id"`
	HandNumber int    `json:"hand_number"`
	StreetName string `json:"street_name"`
	CurrentBet int64  `json:"current_bet"`
	PotTotal   int64  `json:"pot_total"`
}

// TurnStartedEvent fires every time the actor pointer lands on a player.
// Generation identifies the turn; a timer callback carrying a stale
// generation is discarded.
type TurnStartedEvent struct {
	TableID    string           `json:"table_id"`
	StreetName string           `json:"street_name"`
	PlayerID   string           `json:"player_id"`
	Seat       int              `json:"seat"`
	Generation uint64           `json:"generation"`
	Available  AvailableActions `json:"available"`
}

// ActionTakenEvent fires after every successfully processed action.
type ActionTakenEvent struct {
	TableID    string       `json:"table_id"`
	HandNumber int          `json:"hand_number"`
	StreetName string       `json:"street_name"`
	Result     ActionResult `json:"result"`
}

// RoundCompletedEvent fires when a street finishes. HandComplete signals
// that at most one player remains un-folded.
type RoundCompletedEvent struct {
	TableID      string `json:"table_id"`
	HandNumber   int    `json:"hand_number"`
	StreetName   string `json:"street_name"`
	PotTotal     int64  `json:"pot_total"`
	HandComplete bool   `json:"hand_complete"`
}

type bettingEngineCallbacks struct {
	OnRoundStarted   func(RoundStartedEvent)
	OnTurnStarted    func(TurnStartedEvent)
	OnActionTaken    func(ActionTakenEvent)
	OnRoundCompleted func(RoundCompletedEvent)
	OnEngineError    func(tableID string, err error)
}

func newBettingEngineCallbacks() *bettingEngineCallbacks {
	return &bettingEngineCallbacks{
		OnRoundStarted:   func(RoundStartedEvent) {},
		OnTurnStarted:    func(TurnStartedEvent) {},
		OnActionTaken:    func(ActionTakenEvent) {},
		OnRoundCompleted: func(RoundCompletedEvent) {},
		OnEngineError:    func(string, error) {},
	}
}
