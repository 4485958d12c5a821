package apperror

import "errors"

var (
	ErrIllegalMove           = errors.New("illegal move")
	ErrInvalidTurn           = errors.New("it's not the computer's turn")
	ErrPreconditionViolation = errors.New("precondition violation")
	ErrMatchNotFound         = errors.New("match not found")
)
