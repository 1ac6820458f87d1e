package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"buzzer-board-service/internal/app"
	"buzzer-board-service/internal/domain"
)

// Handler exposes the player and host HTTP surfaces on top of the game
// service. Players poll state and submit answers; hosts drive the board.
type Handler struct {
	service *app.GameService
}

func NewHandler(service *app.GameService) *Handler {
	return &Handler{service: service}
}

// Register wires all routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/api/state", h.State)
	mux.HandleFunc("/api/answer", h.Answer)
	mux.HandleFunc("/api/host/teams", h.HostCreateTeam)
	mux.HandleFunc("/api/host/present", h.HostPresent)
	mux.HandleFunc("/api/host/cancel", h.HostCancel)
	mux.HandleFunc("/api/host/board", h.HostBoard)
}

type answerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// State serves the polling snapshot.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, h.service.State())
}

// Answer accepts a form-encoded claim: team, player, answer (index).
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, answerResponse{Message: "malformed form body"})
		return
	}

	team := r.PostFormValue("team")
	player := r.PostFormValue("player")
	// A malformed index still goes through the claim path as out-of-range:
	// the first claim to win the slot ends the round, valid or not.
	answerIndex, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("answer")))
	if err != nil {
		answerIndex = -1
	}

	outcome, err := h.service.AttemptClaim(r.Context(), team, player, answerIndex)
	if err != nil {
		writeJSON(w, rejectionStatus(err), answerResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Success: true, Message: outcome.Message})
}

// HostCreateTeam registers a team: team (name), players (comma-separated,
// optional).
func (h *Handler) HostCreateTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, answerResponse{Message: "malformed form body"})
		return
	}
	name := strings.TrimSpace(r.PostFormValue("team"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, answerResponse{Message: domain.ErrEmptyTeamName.Error()})
		return
	}
	var players []string
	for _, player := range strings.Split(r.PostFormValue("players"), ",") {
		if player = strings.TrimSpace(player); player != "" {
			players = append(players, player)
		}
	}
	if err := h.service.CreateTeam(r.Context(), name, players...); err != nil {
		writeJSON(w, rejectionStatus(err), answerResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Success: true, Message: "team " + name + " created"})
}

// HostPresent opens a cell: category, points, team (optional override of the
// turn order).
func (h *Handler) HostPresent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, answerResponse{Message: "malformed form body"})
		return
	}
	category := r.PostFormValue("category")
	points, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("points")))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, answerResponse{Message: "points must be an integer"})
		return
	}

	team := r.PostFormValue("team")
	if strings.TrimSpace(team) == "" {
		err = h.service.PresentQuestion(category, points)
	} else {
		err = h.service.PresentQuestionTo(category, points, team)
	}
	if err != nil {
		writeJSON(w, rejectionStatus(err), answerResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Success: true, Message: "question presented"})
}

// HostCancel clears an open, unclaimed slot.
func (h *Handler) HostCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := h.service.CancelQuestion(); err != nil {
		writeJSON(w, rejectionStatus(err), answerResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Success: true, Message: "question cancelled"})
}

// HostBoard serves the host-facing board overview.
func (h *Handler) HostBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	overview, err := h.service.BoardOverview()
	if err != nil {
		writeJSON(w, rejectionStatus(err), answerResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuestionActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
