// Package server exposes the recorder over HTTP: syntax checks, the game
// archive with its tree and flattened views, and live sessions over
// websocket.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/archive"
	"github.com/mway1/san/internal/crosscheck"
)

const (
	defaultListLimit   = 20
	defaultImportLimit = 1 << 20
)

// Server holds the handlers' collaborators.
type Server struct {
	log      *zap.SugaredLogger
	engine   san.Engine
	archive  archive.Archive
	upgrader websocket.Upgrader
	now      func() time.Time
	// importLimit caps the size of posted PGN text.
	importLimit int64
}

// New returns a server. A nil archive disables the /games routes.
func New(log *zap.SugaredLogger, engine san.Engine, arch archive.Archive) *Server {
	return &Server{
		log:     log,
		engine:  engine,
		archive: arch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now:         time.Now,
		importLimit: defaultImportLimit,
	}
}

// WithImportLimit sets the largest PGN body accepted by the import route.
func (s *Server) WithImportLimit(n int64) *Server {
	if n > 0 {
		s.importLimit = n
	}
	return s
}

// Router wires the routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Post("/validate", s.HandleValidate)
	r.Get("/play", s.HandlePlay)

	r.Route("/games", func(r chi.Router) {
		r.Use(s.requireArchive)
		r.Get("/", s.HandleListGames)
		r.Post("/", s.HandleImportGame)
		r.Get("/{id}", s.HandleGetGame)
		r.Get("/{id}/tree", s.HandleGameTree)
		r.Get("/{id}/result", s.HandleGameResult)
	})
	return r
}

func (s *Server) requireArchive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.archive == nil {
			writeError(w, http.StatusServiceUnavailable, "archive is disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	SAN string `json:"san"`
}

// ValidateResponse echoes the token with the grammar's verdict.
type ValidateResponse struct {
	SAN   string `json:"san"`
	Valid bool   `json:"valid"`
}

// HandleValidate answers whether a token is SAN. It never consults a board.
func (s *Server) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	writeResponse(w, http.StatusOK, ValidateResponse{SAN: req.SAN, Valid: san.Validate(req.SAN)})
}

// HandleListGames returns archived games, most recently ended first. The
// optional limit query parameter caps the count.
//
// Example:
//
//	GET /games?limit=5
func (s *Server) HandleListGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.archive.List(r.Context(), limit)
	if err != nil {
		s.log.Errorw("list games", "error", err)
		writeInternalError(w)
		return
	}
	writeResponse(w, http.StatusOK, recs)
}

// HandleImportGame stores PGN text posted as the request body. The moves
// must replay on the engine before anything is saved.
func (s *Server) HandleImportGame(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.importLimit+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if int64(len(body)) > s.importLimit {
		writeError(w, http.StatusRequestEntityTooLarge, "game text is too large")
		return
	}

	game, err := san.ParseMoveText(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	final, _, err := san.Replay(game.Ledger, s.engine)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "moves do not replay: "+err.Error())
		return
	}
	if err := crosscheck.Agree(string(body), final); err != nil {
		// The engine stays the authority; a disagreement is only worth a look.
		s.log.Warnw("import crosscheck", "error", err)
	}

	now := s.now()
	rec := archive.NewRecord(s.engine.Name(), game.Ledger, game.Tags, game.Outcome, now, now)
	if err := s.archive.Save(r.Context(), rec); err != nil {
		s.log.Errorw("save game", "error", err)
		writeInternalError(w)
		return
	}
	s.log.Infow("game imported", "id", rec.ID, "plies", rec.Plies)
	writeResponse(w, http.StatusCreated, rec)
}

// HandleGetGame returns one archived record, PGN included.
func (s *Server) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	writeResponse(w, http.StatusOK, rec)
}

// HandleGameTree returns the variation tree as plain text.
func (s *Server) HandleGameTree(w http.ResponseWriter, r *http.Request) {
	game, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := san.WriteTree(w, game.Ledger.Turns()); err != nil {
		s.log.Warnw("write tree", "error", err)
	}
}

// ResultResponse is the flattened move list of a game, both as records and
// as the one-line text the session prints.
type ResultResponse struct {
	Moves []san.FlattenedMove `json:"moves"`
	Text  string              `json:"text"`
}

// HandleGameResult replays an archived game on the engine and returns its
// flattened moves.
func (s *Server) HandleGameResult(w http.ResponseWriter, r *http.Request) {
	game, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	moves, err := san.Flatten(game.Ledger, s.engine)
	if err != nil {
		s.log.Errorw("archived game does not replay", "id", chi.URLParam(r, "id"), "error", err)
		writeInternalError(w)
		return
	}
	writeResponse(w, http.StatusOK, ResultResponse{Moves: moves, Text: san.FormatFlattened(moves)})
}

func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (archive.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.archive.Load(r.Context(), id)
	if errors.Is(err, archive.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return archive.Record{}, false
	} else if err != nil {
		s.log.Errorw("load game", "id", id, "error", err)
		writeInternalError(w)
		return archive.Record{}, false
	}
	return rec, true
}

func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*san.Game, bool) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return nil, false
	}
	game, err := rec.Game()
	if err != nil {
		s.log.Errorw("archived game does not parse", "id", rec.ID, "error", err)
		writeInternalError(w)
		return nil, false
	}
	return game, true
}
