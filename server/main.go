package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/icco/gutil/logging"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/buchanae/gobblet"
)

var (
	// Renderer is a renderer for all occasions. These are our preferred
	// default options.
	// See:
	//  - https://github.com/unrolled/render/blob/v1/README.md
	Renderer = render.New(render.Options{
		Charset:    "UTF-8",
		IndentJSON: false,
		IndentXML:  true,
	})

	log       = logging.Must(logging.NewLogger(gobblet.Service))
	ugcPolicy = bluemonday.StrictPolicy()

	db *gorm.DB
)

func main() {
	port := "8080"
	if fromEnv := os.Getenv("PORT"); fromEnv != "" {
		port = fromEnv
	}
	log.Infow("Starting up", "host", fmt.Sprintf("http://localhost:%s", port))

	isDev := os.Getenv("GOBBLET_ENV") != "production"

	var err error
	db, err = getDB()
	if err != nil {
		log.Panicw("could not get db", zap.Error(err))
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log.Desugar()))

	r.Use(cors.New(cors.Options{
		AllowCredentials:   true,
		OptionsPassthrough: true,
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:     []string{"Link"},
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	}).Handler)

	r.NotFound(notFoundHandler)

	// Stuff that does not ssl redirect
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:   true,
			ContentTypeNosniff: true,
			FrameDeny:          true,
			HostsProxyHeaders:  []string{"X-Forwarded-Host"},
			IsDevelopment:      isDev,
			SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		}).Handler)

		r.Get("/healthz", healthCheckHandler)
		r.Handle("/metrics", promhttp.Handler())
	})

	// Everything that does SSL only
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        isDev,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          !isDev,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		r.Get("/", rootHandler)

		r.Post("/auth/register", registerHandler)
		r.Post("/auth/login", loginHandler)
		r.Mount("/auth/social", AuthRoutes())

		r.Get("/game/new", newGameHandler)
		r.Post("/game/new", newGameHandler)
		r.Get("/game/{slug}", getGameHandler)
		r.Get("/game/{slug}/{turn}", getTurnHandler)
		r.Post("/game/{slug}/move", newMoveHandler)
	})

	log.Fatal(http.ListenAndServe(":"+port, r))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`
<html>
  <head>
    <title>Gobblet</title>
  </head>
  <body>
    <h1>Gobblet</h1>
    <ul>
      <li>Get "/game/{slug}"</li>
      <li>Get "/game/{slug}/{turn}"</li>
      <li>Get "/game/new"</li>
      <li>Post "/game/new"</li>
      <li>Post "/game/{slug}/move"</li>
    </ul>
  </body>
</html>
  `))
}

// CreateGameRequest represents the request body for creating a new game.
type CreateGameRequest struct {
	Size   string `json:"size"`
	Stacks string `json:"stacks"`
	Sizes  string `json:"sizes"` // comma separated, smallest first
}

// GameResponse is the API representation of a game: the stored record
// plus the board replayed through the rules engine.
type GameResponse struct {
	Slug      string            `json:"slug"`
	Size      int               `json:"size"`
	Stacks    int               `json:"stacks"`
	SizeNames []string          `json:"size_names"`
	Status    string            `json:"status"`
	Winner    int               `json:"winner"` // 1-based seat, 0 while active
	Seat      int               `json:"seat"`   // whose turn it is, 1-based
	Moves     []Move            `json:"moves"`
	Board     [][]gobblet.Stack `json:"board"`
}

func gameResponse(rec *Game, g *gobblet.Game) *GameResponse {
	resp := &GameResponse{
		Slug:      rec.Slug,
		Size:      rec.Size,
		Stacks:    rec.Stacks,
		SizeNames: strings.Split(rec.SizeNames, ","),
		Status:    rec.Status,
		Moves:     rec.Moves,
		Board:     g.Board.Cells(),
	}

	for i, p := range g.Players {
		if p == g.CurrentPlayer() {
			resp.Seat = i + 1
		}
	}
	if winner, over := g.GameOver(); over {
		for i, p := range g.Players {
			if p == winner {
				resp.Winner = i + 1
			}
		}
	}

	return resp
}

func newGameHandler(w http.ResponseWriter, r *http.Request) {
	size := gobblet.DefaultBoardSize
	stacks := gobblet.DefaultNumStacks
	var sizeNames []string

	var data CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err == nil {
		if i, err := strconv.Atoi(data.Size); err == nil && i > 0 {
			size = i
		}
		if i, err := strconv.Atoi(data.Stacks); err == nil && i > 0 {
			stacks = i
		}
		if data.Sizes != "" {
			sizeNames = strings.Split(data.Sizes, ",")
		}
	}

	slug, err := createGame(db, size, stacks, sizeNames)
	if err != nil {
		log.Errorw("could not create game", zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/game/%s", slug), http.StatusTemporaryRedirect)
}

// MoveRequest represents the request body for making a move.
type MoveRequest struct {
	Seat int    `json:"seat"` // 1-based seat
	Text string `json:"move"` // move notation, e.g. "2a1" or "a1>b2"
}

func newMoveHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "slug"))

	var data MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Errorw("could not read body", zap.Error(err))
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if data.Text == "" {
		log.Errorw("empty request", "slug", slug)
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": "empty request"})
		return
	}

	mv, err := gobblet.NewMove(data.Text)
	if err != nil {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// One full move is the critical section per shared game.
	lock := lockGame(slug)
	lock.Lock()
	defer lock.Unlock()

	rec, g, err := loadGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if data.Seat < 1 || data.Seat > len(g.Players) {
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad seat"})
		return
	}

	player := g.Players[data.Seat-1]
	if err := g.Apply(player, mv); err != nil {
		if gobblet.IsInvalidMove(err) {
			Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Errorw("could not apply move", "slug", slug, "move", data.Text, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	number := int64(len(rec.Moves) + 1)
	if err := insertMove(db, rec.ID, data.Seat, mv.Text, number); err != nil {
		log.Errorw("bad insert", "slug", slug, "move", data.Text, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	rec.Moves = append(rec.Moves, Move{GameID: rec.ID, Seat: data.Seat, Number: number, Text: mv.Text})

	if _, over := g.GameOver(); over {
		rec.Status = "finished"
		if err := updateGameStatus(db, slug, "finished", data.Seat); err != nil {
			log.Errorw("could not update status", "slug", slug, zap.Error(err))
		}
	}

	Renderer.JSON(w, http.StatusOK, gameResponse(rec, g))
}

func getGameHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "slug"))

	rec, g, err := loadGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	Renderer.JSON(w, http.StatusOK, gameResponse(rec, g))
}

func getTurnHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "slug"))

	rec, _, err := loadGame(db, slug)
	if err != nil {
		log.Errorw("could not get game", "slug", slug, zap.Error(err))
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	turnStr := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "turn"))
	turnNum, err := strconv.ParseInt(turnStr, 10, 0)
	if err != nil {
		log.Errorw("could not parse turn", "slug", slug, "turn", turnStr, zap.Error(err))
		Renderer.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	for _, m := range rec.Moves {
		if m.Number == turnNum {
			Renderer.JSON(w, http.StatusOK, m)
			return
		}
	}

	Renderer.JSON(w, http.StatusNotFound, map[string]string{
		"error": fmt.Sprintf("no move %d in game %s", turnNum, slug),
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	Renderer.JSON(w, http.StatusOK, map[string]string{
		"healthy":  "true",
		"revision": os.Getenv("GIT_REVISION"),
		"tag":      os.Getenv("GIT_TAG"),
		"branch":   os.Getenv("GIT_BRANCH"),
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	Renderer.JSON(w, http.StatusNotFound, map[string]string{
		"error": "404: This page could not be found",
	})
}
