/*
HTTP interface for the catalog.

# Routing Strategy

  - Public: discovery and lookup endpoints (GET).
  - Restricted: mutating endpoints (POST, PATCH, DELETE) behind the admin
    token guard.

The handler translates between the web/JSON layer and the domain [Service].
*/
package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/minhngvu/gamedex/internal/platform/constants"
	"github.com/minhngvu/gamedex/internal/platform/middleware"
	requestutil "github.com/minhngvu/gamedex/internal/platform/request"
	"github.com/minhngvu/gamedex/internal/platform/respond"
	"github.com/minhngvu/gamedex/internal/platform/validate"
	"github.com/minhngvu/gamedex/pkg/query"
)

// Handler implements the HTTP layer for the game catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.getAllGames)
	router.Get("/search", handler.searchGames)
	router.Get("/discover", handler.discoverGames)
	router.Get("/{id}", handler.getGame)

	// ## Catalog Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin())

		admin.Post("/", handler.createGame)
		admin.Patch("/{id}", handler.updateGame)
		admin.Delete("/{id}", handler.deleteGame)
	})

	return router
}

/*
GET /api/v1/games.

Request:
  - limit: positive int, the literal "all" (unbounded), or absent (default 200)

Response:
  - 200: []Game (possibly empty)
*/
func (handler *Handler) getAllGames(writer http.ResponseWriter, request *http.Request) {
	limit := constants.DefaultListLimit

	if raw := request.URL.Query().Get("limit"); raw != "" {
		if strings.EqualFold(raw, "all") {
			limit = 0
		} else if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		} else {
			// Matches the historical behavior: an unusable limit means "all".
			limit = 0
		}
	}

	games, err := handler.service.GetAllGames(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

/*
GET /api/v1/games/search.

Request:
  - query: string (case-insensitive title substring; triggers provider
    escalation on a local miss)
  - genre: string (comma-separated genre filters, OR-ed)
  - review_rating: number (inclusive lower bound)
  - game_mode: string (single-player | multiplayer | both)

Response:
  - 200: []Game — local matches, escalated provider results, or empty
*/
func (handler *Handler) searchGames(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	filter := Filter{
		Query:  params.Get("query"),
		Genres: query.StringSlice(params.Get("genre")),
	}

	if raw := params.Get("review_rating"); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = rating
		}
	}

	if mode := GameMode(params.Get("game_mode")); mode != "" {
		if !mode.IsValid() {
			respond.Error(writer, request, validate.RequiredError(FieldGameMode,
				"Must be one of: single-player, multiplayer, both"))
			return
		}
		filter.Mode = mode
	}

	games, err := handler.service.SearchGames(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

/*
GET /api/v1/games/discover.

Request:
  - sort: string ("trending" default, or "random")
  - limit: positive int (default 150)

Response:
  - 200: []Game
*/
func (handler *Handler) discoverGames(writer http.ResponseWriter, request *http.Request) {
	sort := request.URL.Query().Get("sort")
	limit := requestutil.QueryInt(request, "limit", constants.DefaultDiscoverLimit)

	games, err := handler.service.Discover(request.Context(), sort, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

// GET /api/v1/games/{id} — point lookup, 404 when absent.
func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetGame(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

// POST /api/v1/games — create a record; tags/platforms default to empty.
func (handler *Handler) createGame(writer http.ResponseWriter, request *http.Request) {
	var game Game
	if err := requestutil.DecodeJSON(request, &game); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGame(request.Context(), &game); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Game created successfully")
}

// PATCH /api/v1/games/{id} — partial update; unknown fields are rejected.
func (handler *Handler) updateGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update Update
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.UpdateGame(request.Context(), id, update); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer, "Game updated successfully")
}

// DELETE /api/v1/games/{id} — idempotent delete.
func (handler *Handler) deleteGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGame(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer, "Game deleted successfully")
}
