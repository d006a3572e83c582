package rest

import (
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

type PingHandler interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
}

type pingResponse struct {
	Status     string `json:"status"`
	Engine     string `json:"engine"`
	Difficulty string `json:"difficulty"`
	Search     string `json:"search"`
}

type pingHandler struct {
	difficulty minimax.Difficulty
}

// NewPingHandler answers health checks with the difficulty new games default to.
func NewPingHandler(difficulty minimax.Difficulty) PingHandler {
	return &pingHandler{difficulty: difficulty}
}

func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{
		Status:     "pong",
		Engine:     "tictactoe-engine",
		Difficulty: string(that.difficulty),
		Search:     that.difficulty.Config().String(),
	})
}
