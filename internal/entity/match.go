package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode  = errors.New("unknown game mode")
	ErrUnknownState = errors.New("unknown match state")
)

type Mode uint8

const (
	HumanVsComputer Mode = iota
	HumanVsHuman
)

const (
	modeComputer = "ai"
	modeHuman    = "pvp"
)

// ParseMode - accepts "ai" (human vs computer) and "pvp" (human vs human).
func ParseMode(s string) (Mode, error) {
	switch s {
	case modeComputer:
		return HumanVsComputer, nil
	case modeHuman:
		return HumanVsHuman, nil
	default:
		return HumanVsComputer, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (that Mode) Toggle() Mode {
	if that == HumanVsComputer {
		return HumanVsHuman
	}

	return HumanVsComputer
}

func (that Mode) String() string {
	switch that {
	case HumanVsComputer:
		return modeComputer
	case HumanVsHuman:
		return modeHuman
	default:
		return fmt.Sprintf("mode(%d)", uint8(that))
	}
}

func (that Mode) MarshalText() ([]byte, error) {
	if that != HumanVsComputer && that != HumanVsHuman {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*that = mode

	return nil
}

// State is the phase of a match.
type State uint8

const (
	StateAwaitingMove State = iota
	StateOver
)

func (that State) String() string {
	switch that {
	case StateAwaitingMove:
		return "awaiting_move"
	case StateOver:
		return "over"
	default:
		return fmt.Sprintf("state(%d)", uint8(that))
	}
}

func (that State) MarshalText() ([]byte, error) {
	if that != StateAwaitingMove && that != StateOver {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case StateAwaitingMove.String():
		*that = StateAwaitingMove
	case StateOver.String():
		*that = StateOver
	default:
		return fmt.Errorf("%w: %q", ErrUnknownState, text)
	}

	return nil
}

// MatchState is the serialisable view of a match. Moves is authoritative,
// the other board fields are derived from it for clients.
type MatchState struct {
	ID           string           `json:"id"`
	Mode         Mode             `json:"mode"`
	ComputerSide Mark             `json:"computer_side"`
	Level        int              `json:"level"`
	Moves        []Cell           `json:"moves"`
	Board        [Size][Size]Mark `json:"board"`
	SideToMove   Mark             `json:"side_to_move"`
	State        State            `json:"state"`
	Outcome      Outcome          `json:"outcome"`
}

func (that *MatchState) IsOver() bool {
	return that.State == StateOver
}
