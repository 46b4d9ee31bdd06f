package betting

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"

	"github.com/cardroom/betting/pot_manager"
)

var (
	ErrBlindSeatNotFound = errors.New("blind: no player at blind seat")
)

// Blind posting kinds. A dead blind goes to the pot without counting toward
// the poster's current-round bet; a live blind counts as their bet.
const (
	BlindType_Small     = "small_blind"
	BlindType_Big       = "big_blind"
	BlindType_Ante      = "ante"
	BlindType_DeadSmall = "dead_small_blind"
)

// PostedBlind reports one forced contribution.
type PostedBlind struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	AllIn    bool   `json:"all_in"`
}

// MissedBlindRecord is the outstanding blind debt of a player who sat out
// past the blinds. At most one active record exists per player.
type MissedBlindRecord struct {
	PlayerID         string `json:"player_id"`
	MissedSmallBlind bool   `json:"missed_small_blind"`
	MissedBigBlind   bool   `json:"missed_big_blind"`
	SmallBlindAmount int64  `json:"small_blind_amount"`
	BigBlindAmount   int64  `json:"big_blind_amount"`
	HandNumberMissed int    `json:"hand_number_missed"`
}

// BlindPostingService collects blinds and antes and tracks missed-blind
// debt, keyed by stable player ID.
type BlindPostingService struct {
	missed map[string]*MissedBlindRecord
	logger *logrus.Logger
}

func NewBlindPostingService(logger *logrus.Logger) *BlindPostingService {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &BlindPostingService{
		missed: make(map[string]*MissedBlindRecord),
		logger: logger,
	}
}

// PostBlinds collects the small and big blind, each capped at the poster's
// stack (the poster goes all-in when short). Returns the posted blinds in
// posting order and the total collected.
func (bs *BlindPostingService) PostBlinds(players []*PokerPlayer, sbSeat, bbSeat int, sbAmount, bbAmount int64, pm *pot_manager.PotManager) ([]PostedBlind, int64, error) {
	if len(players) < 2 {
		panic(fmt.Sprintf("blind: cannot post blinds with %d players", len(players)))
	}

	sb := findBySeat(players, sbSeat)
	bb := findBySeat(players, bbSeat)
	if sb == nil || bb == nil {
		return nil, 0, fmt.Errorf("%w: sb seat %d, bb seat %d", ErrBlindSeatNotFound, sbSeat, bbSeat)
	}

	posted := make([]PostedBlind, 0, 2)
	total := int64(0)

	for _, posting := range []struct {
		player *PokerPlayer
		kind   string
		amount int64
	}{
		{sb, BlindType_Small, sbAmount},
		{bb, BlindType_Big, bbAmount},
	} {
		amount := cappedAtStack(posting.player, posting.amount)
		if err := posting.player.PlaceBet(amount); err != nil {
			return nil, 0, err
		}
		pm.AddContribution(posting.player.ID, amount)
		posted = append(posted, PostedBlind{
			PlayerID: posting.player.ID,
			Seat:     posting.player.Seat,
			Type:     posting.kind,
			Amount:   amount,
			AllIn:    posting.player.IsAllIn(),
		})
		total += amount

		bs.logger.WithFields(logrus.Fields{
			"player": posting.player.ID,
			"seat":   posting.player.Seat,
			"type":   posting.kind,
			"amount": amount,
		}).Debug("posted blind")
	}

	return posted, total, nil
}

// CollectAntes collects the ante from every non-folded player with chips,
// capped at each stack. Antes never count toward the upcoming round's
// current bet: every poster's street bet is reset to zero afterward.
func (bs *BlindPostingService) CollectAntes(players []*PokerPlayer, anteAmount int64, pm *pot_manager.PotManager) ([]PostedBlind, int64, error) {
	return bs.collectAntes(players, nil, anteAmount, pm)
}

// CollectAntesFromSeats is the explicit-seat variant used by games where
// only some seats owe an ante.
func (bs *BlindPostingService) CollectAntesFromSeats(players []*PokerPlayer, seatNumbers []int, anteAmount int64, pm *pot_manager.PotManager) ([]PostedBlind, int64, error) {
	return bs.collectAntes(players, seatNumbers, anteAmount, pm)
}

func (bs *BlindPostingService) collectAntes(players []*PokerPlayer, seatNumbers []int, anteAmount int64, pm *pot_manager.PotManager) ([]PostedBlind, int64, error) {
	posted := make([]PostedBlind, 0, len(players))
	total := int64(0)

	for _, player := range players {
		if player.HasFolded() || player.Chips() == 0 {
			continue
		}
		if seatNumbers != nil && !funk.ContainsInt(seatNumbers, player.Seat) {
			continue
		}

		amount := cappedAtStack(player, anteAmount)
		if amount == 0 {
			continue
		}
		if err := player.PlaceBet(amount); err != nil {
			return nil, 0, err
		}
		pm.AddContribution(player.ID, amount)
		posted = append(posted, PostedBlind{
			PlayerID: player.ID,
			Seat:     player.Seat,
			Type:     BlindType_Ante,
			Amount:   amount,
			AllIn:    player.IsAllIn(),
		})
		total += amount
	}

	// Antes are not live bets.
	for _, player := range players {
		player.ResetCurrentBet()
	}

	bs.logger.WithFields(logrus.Fields{
		"count": len(posted),
		"total": total,
	}).Debug("collected antes")

	return posted, total, nil
}

// RecordMissedBlinds stores the player's outstanding blind debt,
// overwriting any prior record.
func (bs *BlindPostingService) RecordMissedBlinds(playerID string, missedSB, missedBB bool, sbAmount, bbAmount int64, handNumber int) {
	bs.missed[playerID] = &MissedBlindRecord{
		PlayerID:         playerID,
		MissedSmallBlind: missedSB,
		MissedBigBlind:   missedBB,
		SmallBlindAmount: sbAmount,
		BigBlindAmount:   bbAmount,
		HandNumberMissed: handNumber,
	}
}

// PostMissedBlinds settles a returning player's blind debt: the missed
// small blind posts dead (into the pot, not toward their street bet) and
// the missed big blind posts live. No-op without a record; the record is
// cleared afterward.
func (bs *BlindPostingService) PostMissedBlinds(player *PokerPlayer, seat int, bbAmount int64, pm *pot_manager.PotManager) ([]PostedBlind, int64, error) {
	record, exist := bs.missed[player.ID]
	if !exist {
		return nil, 0, nil
	}

	posted := make([]PostedBlind, 0, 2)
	total := int64(0)

	if record.MissedSmallBlind {
		amount := cappedAtStack(player, record.SmallBlindAmount)
		if err := player.PlaceBet(amount); err != nil {
			return nil, 0, err
		}
		pm.AddContribution(player.ID, amount)
		player.ResetCurrentBet()
		posted = append(posted, PostedBlind{
			PlayerID: player.ID,
			Seat:     seat,
			Type:     BlindType_DeadSmall,
			Amount:   amount,
			AllIn:    player.IsAllIn(),
		})
		total += amount
	}

	if record.MissedBigBlind {
		amount := cappedAtStack(player, bbAmount)
		if err := player.PlaceBet(amount); err != nil {
			return nil, 0, err
		}
		pm.AddContribution(player.ID, amount)
		posted = append(posted, PostedBlind{
			PlayerID: player.ID,
			Seat:     seat,
			Type:     BlindType_Big,
			Amount:   amount,
			AllIn:    player.IsAllIn(),
		})
		total += amount
	}

	delete(bs.missed, player.ID)

	bs.logger.WithFields(logrus.Fields{
		"player": player.ID,
		"seat":   seat,
		"total":  total,
	}).Debug("posted missed blinds")

	return posted, total, nil
}

func (bs *BlindPostingService) HasMissedBlinds(playerID string) bool {
	_, exist := bs.missed[playerID]
	return exist
}

func (bs *BlindPostingService) GetMissedBlinds(playerID string) (*MissedBlindRecord, bool) {
	record, exist := bs.missed[playerID]
	return record, exist
}

// ClearMissedBlinds drops one player's record, e.g. when the rotation
// brings them back through the big blind naturally.
func (bs *BlindPostingService) ClearMissedBlinds(playerID string) {
	delete(bs.missed, playerID)
}

func (bs *BlindPostingService) ClearAllMissedBlinds() {
	bs.missed = make(map[string]*MissedBlindRecord)
}

// GetAllMissedBlinds returns outstanding records sorted by player ID.
func (bs *BlindPostingService) GetAllMissedBlinds() []*MissedBlindRecord {
	records := make([]*MissedBlindRecord, 0, len(bs.missed))
	for _, record := range bs.missed {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PlayerID < records[j].PlayerID
	})
	return records
}

func findBySeat(players []*PokerPlayer, seat int) *PokerPlayer {
	for _, player := range players {
		if player.Seat == seat {
			return player
		}
	}
	return nil
}

func cappedAtStack(player *PokerPlayer, amount int64) int64 {
	if amount > player.Chips() {
		return player.Chips()
	}
	return amount
}
