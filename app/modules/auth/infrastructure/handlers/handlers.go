package authhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	authservice "github.com/hablemos-club/league-bot/app/modules/auth/application"
	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
	leaderboardservice "github.com/hablemos-club/league-bot/app/modules/leaderboard/application"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service     authservice.Service
	leaderboard StandingsReader
	rounds      RoundReader
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	leaderboard StandingsReader,
	rounds RoundReader,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &AuthHandlers{
		service:     service,
		leaderboard: leaderboard,
		rounds:      rounds,
		logger:      logger,
		tracer:      tracer,
	}
}

// credentialsRequest is the POST /api/auth/nats-creds body.
type credentialsRequest struct {
	Instance string `json:"instance"`
	Role     string `json:"role"`
}

// credentialsResponse carries a complete provisioned identity.
type credentialsResponse struct {
	APIToken  string    `json:"api_token"`
	NATSJWT   string    `json:"nats_jwt"`
	NATSSeed  string    `json:"nats_seed"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// roundResponse is the GET /api/league/rounds/current body.
type roundResponse struct {
	ID          int64     `json:"id"`
	RoundNumber int64     `json:"round_number"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleNATSCredentials provisions a gateway instance.
func (h *AuthHandlers) HandleNATSCredentials(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleNATSCredentials")
	defer span.End()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	role := authdomain.Role(req.Role)
	if req.Role == "" {
		role = authdomain.RoleGateway
	}

	creds, err := h.service.IssueGatewayCredentials(ctx, authservice.CredentialsRequest{
		Instance: req.Instance,
		Role:     role,
	})
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrMissingInstance), errors.Is(err, authservice.ErrInvalidRole):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, authservice.ErrCredsDisabled):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			h.logger.ErrorContext(ctx, "Credential provisioning failed", attr.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, credentialsResponse{
		APIToken:  creds.APIToken,
		NATSJWT:   creds.NATSJWT,
		NATSSeed:  creds.NATSSeed,
		Role:      creds.Role.String(),
		ExpiresAt: creds.ExpiresAt,
	})
}

// HandleLeaderboard serves a ranked board.
func (h *AuthHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleLeaderboard")
	defer span.End()

	board := sharedtypes.BoardType(chi.URLParam(r, "board"))

	// Zero means the service's configured display count; the service also
	// clamps oversized requests.
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.leaderboard.GetLeaderboard(ctx, board, limit)
	if err != nil {
		switch {
		case errors.Is(err, leaderboardservice.ErrInvalidBoardType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, rounddb.ErrNoActiveRound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "Leaderboard read failed", attr.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"board":   board,
		"entries": entries,
	})
}

// HandleCurrentRound serves the ACTIVE round.
func (h *AuthHandlers) HandleCurrentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleCurrentRound")
	defer span.End()

	info, err := h.rounds.GetCurrentRound(ctx)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Current round read failed", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, roundResponse{
		ID:          int64(info.ID),
		RoundNumber: int64(info.RoundNumber),
		StartTime:   info.StartTime,
		EndTime:     info.EndTime,
		Status:      string(info.Status),
	})
}
