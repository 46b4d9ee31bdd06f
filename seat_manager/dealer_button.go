package seat_manager

import "fmt"

// DealerButtonState tracks the button across hands. The button can sit on a
// vacated seat, flagged dead, until the next advance moves it along.
type DealerButtonState struct {
	ButtonPosition int  `json:"button_position"`
	HandNumber     int  `json:"hand_number"`
	IsDeadButton   bool `json:"is_dead_button"`
}

// DealerButtonService computes button and blind positions over a sparse set
// of occupied seats. All methods are pure seat arithmetic.
type DealerButtonService struct{}

func NewDealerButtonService() *DealerButtonService {
	return &DealerButtonService{}
}

// InitializeButton places the button on the lowest occupied seat. Calling it
// with fewer than two occupied seats is a caller bug.
func (s *DealerButtonService) InitializeButton(occupiedSeats []int) DealerButtonState {
	if len(occupiedSeats) < 2 {
		panic(fmt.Sprintf("seat: cannot initialize button with %d occupied seats", len(occupiedSeats)))
	}

	lowest := occupiedSeats[0]
	for _, seat := range occupiedSeats[1:] {
		if seat < lowest {
			lowest = seat
		}
	}
	return DealerButtonState{
		ButtonPosition: lowest,
		HandNumber:     1,
	}
}

// MoveButtonClockwise returns the next occupied seat strictly clockwise of
// current, wrapping around the table and skipping vacant seats.
func (s *DealerButtonService) MoveButtonClockwise(current int, occupiedSeats []int, maxSeats int) int {
	occupied := make(map[int]bool, len(occupiedSeats))
	for _, seat := range occupiedSeats {
		occupied[seat] = true
	}

	for i := 1; i <= maxSeats; i++ {
		seat := (current + i) % maxSeats
		if occupied[seat] {
			return seat
		}
	}
	return current
}

// GetSmallBlindPosition returns the small blind seat. Heads-up the button
// posts the small blind itself.
func (s *DealerButtonService) GetSmallBlindPosition(button int, occupiedSeats []int, maxSeats int) int {
	if len(occupiedSeats) == 2 {
		return button
	}
	return s.MoveButtonClockwise(button, occupiedSeats, maxSeats)
}

// GetBigBlindPosition returns the big blind seat: the second occupied seat
// clockwise of the button, or the non-button seat heads-up.
func (s *DealerButtonService) GetBigBlindPosition(button int, occupiedSeats []int, maxSeats int) int {
	if len(occupiedSeats) == 2 {
		return s.MoveButtonClockwise(button, occupiedSeats, maxSeats)
	}
	sb := s.MoveButtonClockwise(button, occupiedSeats, maxSeats)
	return s.MoveButtonClockwise(sb, occupiedSeats, maxSeats)
}

// GetFirstToActPreFlop returns the seat that opens the preflop betting: the
// first occupied seat after the big blind, which heads-up wraps back to the
// button.
func (s *DealerButtonService) GetFirstToActPreFlop(button int, occupiedSeats []int, maxSeats int) int {
	bb := s.GetBigBlindPosition(button, occupiedSeats, maxSeats)
	return s.MoveButtonClockwise(bb, occupiedSeats, maxSeats)
}

// GetFirstToActPostFlop returns the first non-folded seat clockwise of the
// button.
func (s *DealerButtonService) GetFirstToActPostFlop(button int, activeSeats []int, maxSeats int) int {
	return s.MoveButtonClockwise(button, activeSeats, maxSeats)
}

// HandleSeatChange re-checks the button seat after players join or leave. A
// vacated button seat keeps the button in place but flags it dead; the button
// never jumps mid-rotation.
func (s *DealerButtonService) HandleSeatChange(state DealerButtonState, occupiedSeats []int, maxSeats int) DealerButtonState {
	occupied := false
	for _, seat := range occupiedSeats {
		if seat == state.ButtonPosition {
			occupied = true
			break
		}
	}
	state.IsDeadButton = !occupied
	return state
}

// AdvanceButton moves the button to the next occupied seat for a new hand,
// clearing any dead-button flag.
func (s *DealerButtonService) AdvanceButton(state DealerButtonState, occupiedSeats []int, maxSeats int) DealerButtonState {
	state.ButtonPosition = s.MoveButtonClockwise(state.ButtonPosition, occupiedSeats, maxSeats)
	state.HandNumber++
	state.IsDeadButton = false
	return state
}
