package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var errBadRequest = errors.New("bad request")

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateMatch(w http.ResponseWriter, r *http.Request)
	GetMatch(w http.ResponseWriter, r *http.Request)
	DeleteMatch(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	ComputerMove(w http.ResponseWriter, r *http.Request)
	SetMode(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type matchUseCase interface {
	CreateMatch(ctx context.Context, mode entity.Mode) (*entity.MatchState, error)
	GetMatch(ctx context.Context, id string) (*entity.MatchState, error)
	DeleteMatch(ctx context.Context, id string) error
	MakeMove(ctx context.Context, id string, row, col int) (*entity.MatchState, error)
	ComputerMove(ctx context.Context, id string) (*entity.MatchState, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.MatchState, error)
	Reset(ctx context.Context, id string) (*entity.MatchState, error)
}

type createMatchRequest struct {
	Mode string `json:"mode"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger       *slog.Logger
	matchUseCase matchUseCase
	defaultMode  entity.Mode
}

// NewHandlers - matches created without a mode use defaultMode.
func NewHandlers(logger *slog.Logger, matchUseCase matchUseCase, defaultMode entity.Mode) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		matchUseCase: matchUseCase,
		defaultMode:  defaultMode,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, err)
		return
	}

	mode := that.defaultMode
	if req.Mode != "" {
		parsed, err := entity.ParseMode(req.Mode)
		if err != nil {
			that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}

		mode = parsed
	}

	match, err := that.matchUseCase.CreateMatch(r.Context(), mode)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, match)
}

func (that *handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := that.matchUseCase.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *handlers) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := that.matchUseCase.DeleteMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	match, err := that.matchUseCase.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *handlers) ComputerMove(w http.ResponseWriter, r *http.Request) {
	match, err := that.matchUseCase.ComputerMove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *handlers) SetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	mode, err := entity.ParseMode(req.Mode)
	if err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	match, err := that.matchUseCase.SetMode(r.Context(), chi.URLParam(r, "id"), mode)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	match, err := that.matchUseCase.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid payload: %w", errBadRequest, err)
	}

	return nil
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrInvalidTurn),
		errors.Is(err, apperror.ErrPreconditionViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		message = http.StatusText(code)
	}

	that.writeJSON(w, code, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
