package hand_evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulhankin/poker"

	"github.com/cardroom/betting/pot_manager"
)

var (
	ErrInvalidCard     = errors.New("evaluator: invalid card")
	ErrIncompleteBoard = errors.New("evaluator: board must hold five cards")
)

// Suit values 0-3: clubs, diamonds, hearts, spades.
const (
	Club uint8 = iota
	Diamond
	Heart
	Spade
)

// Rank values 1-13, ace low in encoding (the evaluator still scores it high).
const (
	Ace   uint8 = 1
	Jack  uint8 = 11
	Queen uint8 = 12
	King  uint8 = 13
)

type Card struct {
	Suit uint8 `json:"suit"`
	Rank uint8 `json:"rank"`
}

// ParseCard reads the two-character card notation, rank then suit: "As",
// "Td", "7h", "2c".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var rank uint8
	switch s[0] {
	case 'A', 'a':
		rank = Ace
	case 'K', 'k':
		rank = King
	case 'Q', 'q':
		rank = Queen
	case 'J', 'j':
		rank = Jack
	case 'T', 't':
		rank = 10
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = s[0] - '0'
	default:
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var suit uint8
	switch s[1] {
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	case 'h', 'H':
		suit = Heart
	case 's', 'S':
		suit = Spade
	default:
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards reads a list of card notations.
func ParseCards(notations ...string) ([]Card, error) {
	cards := make([]Card, 0, len(notations))
	for _, n := range notations {
		card, err := ParseCard(n)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (c Card) String() string {
	ranks := map[uint8]string{Ace: "A", 10: "T", Jack: "J", Queen: "Q", King: "K"}
	suits := [...]string{"c", "d", "h", "s"}
	r, ok := ranks[c.Rank]
	if !ok {
		r = fmt.Sprintf("%d", c.Rank)
	}
	if c.Suit > Spade {
		return r + "?"
	}
	return r + suits[c.Suit]
}

func (c Card) lib() (poker.Card, error) {
	return poker.MakeCard(poker.Suit(c.Suit), poker.Rank(c.Rank))
}

// Holding is one player's two hole cards.
type Holding [2]Card

// Evaluator scores seven-card holdem hands and builds the winner-selector
// callbacks the pot awarding expects. It never touches chips: selection in,
// winner IDs out.
type Evaluator struct {
	holdings map[string]Holding
	board    []Card
}

func NewEvaluator(holdings map[string]Holding, board []Card) (*Evaluator, error) {
	if len(board) != 5 {
		return nil, ErrIncompleteBoard
	}
	return &Evaluator{holdings: holdings, board: board}, nil
}

// Score returns the seven-card strength of one player's hand. Higher wins.
func (e *Evaluator) Score(playerID string) (int16, error) {
	holding, exist := e.holdings[playerID]
	if !exist {
		return 0, fmt.Errorf("evaluator: no holding for player %s", playerID)
	}
	final, err := e.finalHand(holding)
	if err != nil {
		return 0, err
	}
	return poker.Eval7(&final), nil
}

// Describe returns the human-readable name of the player's best hand.
func (e *Evaluator) Describe(playerID string) (string, error) {
	holding, exist := e.holdings[playerID]
	if !exist {
		return "", fmt.Errorf("evaluator: no holding for player %s", playerID)
	}
	final, err := e.finalHand(holding)
	if err != nil {
		return "", err
	}
	return poker.Describe(final[:])
}

// HighHandSelector builds the winner selector for ordinary pots: among the
// eligible players it returns every player tied for the best seven-card
// hand, in the eligible order handed in. Players without a known holding
// are skipped.
func (e *Evaluator) HighHandSelector() pot_manager.WinnerSelector {
	return func(eligible []string) []string {
		type scored struct {
			playerID string
			score    int16
		}
		scoredPlayers := make([]scored, 0, len(eligible))

		for _, playerID := range eligible {
			score, err := e.Score(playerID)
			if err != nil {
				continue
			}
			scoredPlayers = append(scoredPlayers, scored{playerID: playerID, score: score})
		}
		if len(scoredPlayers) == 0 {
			return nil
		}

		best := scoredPlayers[0].score
		for _, sp := range scoredPlayers[1:] {
			if sp.score > best {
				best = sp.score
			}
		}

		winners := make([]string, 0, len(scoredPlayers))
		for _, sp := range scoredPlayers {
			if sp.score == best {
				winners = append(winners, sp.playerID)
			}
		}
		return winners
	}
}

// SevensSelector builds the selector for the sevens half of a split pot:
// every eligible player holding at least one seven qualifies. An empty
// return rolls the sevens half into the high half.
func (e *Evaluator) SevensSelector() pot_manager.WinnerSelector {
	return func(eligible []string) []string {
		var winners []string
		for _, playerID := range eligible {
			holding, exist := e.holdings[playerID]
			if !exist {
				continue
			}
			if holding[0].Rank == 7 || holding[1].Rank == 7 {
				winners = append(winners, playerID)
			}
		}
		return winners
	}
}

// Rankings returns every known player ordered best hand first, for
// showdown display.
func (e *Evaluator) Rankings() ([]string, error) {
	type scored struct {
		playerID string
		score    int16
	}
	scoredPlayers := make([]scored, 0, len(e.holdings))
	for playerID := range e.holdings {
		score, err := e.Score(playerID)
		if err != nil {
			return nil, err
		}
		scoredPlayers = append(scoredPlayers, scored{playerID: playerID, score: score})
	}
	sort.Slice(scoredPlayers, func(i, j int) bool {
		if scoredPlayers[i].score != scoredPlayers[j].score {
			return scoredPlayers[i].score > scoredPlayers[j].score
		}
		return scoredPlayers[i].playerID < scoredPlayers[j].playerID
	})

	ranked := make([]string, 0, len(scoredPlayers))
	for _, sp := range scoredPlayers {
		ranked = append(ranked, sp.playerID)
	}
	return ranked, nil
}

func (e *Evaluator) finalHand(holding Holding) ([7]poker.Card, error) {
	var final [7]poker.Card
	for i, c := range e.board {
		card, err := c.lib()
		if err != nil {
			return [7]poker.Card{}, fmt.Errorf("invalid board card at idx %d: %w", i, err)
		}
		final[i] = card
	}
	for i, c := range holding {
		card, err := c.lib()
		if err != nil {
			return [7]poker.Card{}, fmt.Errorf("invalid hole card: %w", err)
		}
		final[5+i] = card
	}
	return final, nil
}
