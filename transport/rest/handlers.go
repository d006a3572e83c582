package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/explain"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type Handlers interface {
	BestMove(w http.ResponseWriter, r *http.Request)
	Analysis(w http.ResponseWriter, r *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
}

type gameManager interface {
	CreateGame(ctx context.Context, humanMark, startingMark entity.Mark, difficulty string) (*entity.Session, error)
	GetGame(ctx context.Context, id string) (*entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error)
}

type analyzer interface {
	BestMove(ctx context.Context, position usecase.Position) (usecase.BestMove, error)
	Analyze(ctx context.Context, position usecase.Position, mark entity.Mark, flatten bool) (usecase.Analysis, error)
}

type handlers struct {
	logger      *slog.Logger
	gameManager gameManager
	analyzer    analyzer
}

func NewHandlers(logger *slog.Logger, gameManager gameManager, analyzer analyzer) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameManager: gameManager,
		analyzer:    analyzer,
	}
}

type positionRequest struct {
	Board        string `json:"board"`
	StartingMark string `json:"starting_mark"`
	Difficulty   string `json:"difficulty"`
}

func (that positionRequest) position() usecase.Position {
	return usecase.Position{
		Board:        that.Board,
		StartingMark: entity.Mark(that.StartingMark),
		Difficulty:   that.Difficulty,
	}
}

type bestMoveResponse struct {
	// Cell is nil when the game is over.
	Cell  *int          `json:"cell"`
	Board string        `json:"board_after,omitempty"`
	Score float64       `json:"score"`
	Kind  minimax.Kind  `json:"kind"`
	Stats minimax.Stats `json:"stats"`
}

type analysisRequest struct {
	positionRequest
	Mark    string `json:"mark"`
	Flatten bool   `json:"flatten"`
}

type preorderItem struct {
	Board  string       `json:"board"`
	Cell   int          `json:"cell"`
	Score  *float64     `json:"score,omitempty"`
	Pruned bool         `json:"pruned"`
	Kind   minimax.Kind `json:"kind"`
}

type analysisResponse struct {
	Tree       explain.Record      `json:"tree"`
	Candidates []explain.Candidate `json:"candidates"`
	Stats      minimax.Stats       `json:"stats"`
	Preorder   []preorderItem      `json:"preorder,omitempty"`
}

type createGameRequest struct {
	HumanMark    string `json:"human_mark"`
	StartingMark string `json:"starting_mark"`
	Difficulty   string `json:"difficulty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

func (that *handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	var request positionRequest
	if !decode(w, r, &request) {
		return
	}

	best, err := that.analyzer.BestMove(r.Context(), request.position())
	if err != nil {
		that.writeError(w, err)
		return
	}

	response := bestMoveResponse{
		Score: best.Score,
		Kind:  best.Kind,
		Stats: best.Stats,
	}

	if best.Move != nil {
		response.Cell = lo.ToPtr(best.Move.Cell)
		response.Board = best.Move.After.Board().String()
	}

	writeJSON(w, http.StatusOK, response)
}

func (that *handlers) Analysis(w http.ResponseWriter, r *http.Request) {
	var request analysisRequest
	if !decode(w, r, &request) {
		return
	}

	analysis, err := that.analyzer.Analyze(r.Context(), request.position(), entity.Mark(request.Mark), request.Flatten)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		Tree:       explain.Serialize(analysis.Root),
		Candidates: analysis.Candidates,
		Stats:      analysis.Stats,
		Preorder: lo.Map(analysis.Nodes, func(node *explain.Node, _ int) preorderItem {
			return preorderItem{
				Board:  node.Board.String(),
				Cell:   node.Cell,
				Score:  node.Score,
				Pruned: node.Pruned,
				Kind:   node.Kind,
			}
		}),
	})
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var request createGameRequest
	if !decode(w, r, &request) {
		return
	}

	human, _ := lo.Coalesce(entity.Mark(request.HumanMark), entity.MarkX)
	starting, _ := lo.Coalesce(entity.Mark(request.StartingMark), entity.MarkX)

	session, err := that.gameManager.CreateGame(r.Context(), human, starting, request.Difficulty)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameManager.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var request turnRequest
	if !decode(w, r, &request) {
		return
	}

	if request.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	session, err := that.gameManager.MakeTurn(r.Context(), chi.URLParam(r, "id"), *request.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrMalformedBoard),
		errors.Is(err, apperror.ErrInconsistentState),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownDifficulty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})

		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})

		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
