package entity

import (
	"errors"
	"fmt"
)

// Mark is the value occupying a board cell.
type Mark uint8

const (
	Empty Mark = iota
	Player
	Opponent
)

const (
	markEmpty    = ""
	markPlayer   = "player"
	markOpponent = "opponent"
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseMark - converts the text form of a mark ("", "player", "opponent").
func ParseMark(s string) (Mark, error) {
	switch s {
	case markEmpty:
		return Empty, nil
	case markPlayer:
		return Player, nil
	case markOpponent:
		return Opponent, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

// Other - returns the adversary of a side. Empty has no adversary.
func (that Mark) Other() Mark {
	switch that {
	case Player:
		return Opponent
	case Opponent:
		return Player
	default:
		return Empty
	}
}

func (that Mark) IsSide() bool {
	return that == Player || that == Opponent
}

// Symbol - returns the glyph a renderer draws for the mark.
func (that Mark) Symbol() string {
	switch that {
	case Player:
		return "X"
	case Opponent:
		return "O"
	default:
		return " "
	}
}

func (that Mark) String() string {
	switch that {
	case Empty:
		return "empty"
	case Player:
		return markPlayer
	case Opponent:
		return markOpponent
	default:
		return fmt.Sprintf("mark(%d)", uint8(that))
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	switch that {
	case Empty:
		return []byte(markEmpty), nil
	case Player:
		return []byte(markPlayer), nil
	case Opponent:
		return []byte(markOpponent), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMark, uint8(that))
	}
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}
