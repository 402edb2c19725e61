package httpx

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"chessrules/internal/game"
	"chessrules/internal/render"
)

//go:embed assets
var assets embed.FS

// Server wires the HTTP layer to the chess engine and templates.
type Server struct {
	engineMu sync.Mutex
	engine   *game.Engine
	pushMu   sync.Mutex
	tmpl     *template.Template
	static   fs.FS
	hub      *hub
	logTo    io.Writer
	srvMu    sync.Mutex
	srv      *http.Server
}

// Options configures a Server.
type Options struct {
	// AccessLog receives one line per request. Nil disables request logging.
	AccessLog io.Writer
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	htmlCSP                = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server around engine and parses the embedded templates.
func NewServer(engine *game.Engine, opts Options) (*Server, error) {
	t, err := template.ParseFS(assets, "assets/templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, errors.Wrap(err, "static assets")
	}
	return &Server{
		engine: engine,
		tmpl:   t,
		static: static,
		hub:    newHub(),
		logTo:  opts.AccessLog,
	}, nil
}

// Listen starts the HTTP server and blocks until it stops.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close shuts the HTTP server down gracefully and drops websocket clients.
func (s *Server) Close(ctx context.Context) error {
	var result *multierror.Error

	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "http shutdown"))
		}
	}
	if err := s.hub.close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Handler returns the routed handler, wrapped with access logging when
// configured.
func (s *Server) Handler() http.Handler {
	r := s.routes()
	if s.logTo == nil {
		return r
	}
	return handlers.LoggingHandler(s.logTo, r)
}

// routes configures the router with UI, JSON APIs, static files.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/board.svg", s.handleBoard).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)

	// JSON APIs. Registered on the root router so a wrong method is a 405.
	r.HandleFunc("/api/state", s.withJSON(s.handleState)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/move", s.withJSON(s.handleMove)).Methods(http.MethodPost)
	r.HandleFunc("/api/moves/{from}", s.withJSON(s.handleMoves)).Methods(http.MethodGet)
	r.HandleFunc("/api/undo", s.withJSON(s.handleUndo)).Methods(http.MethodPost)
	r.HandleFunc("/api/reset", s.withJSON(s.handleReset)).Methods(http.MethodPost)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}

// ---- UI ----

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	applyHTMLSecurityHeaders(w.Header())
	state := s.snapshot()
	data := map[string]any{
		"Init":   mustJSON(state),
		"Status": state.Status,
		"Turn":   state.TurnName,
	}
	if err := s.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		log.Printf("template exec: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := render.Options{Flipped: isTruthy(q.Get("flip"))}
	for _, raw := range q["highlight"] {
		if c, ok := game.CoordToSquare(raw); ok {
			opts.Highlight = append(opts.Highlight, c)
		}
	}

	s.engineMu.Lock()
	pos := s.engine.Position()
	s.engineMu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	render.Board(w, pos, opts)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.serve(w, r, stateMessage{Type: "state", State: s.snapshot()})
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func mustJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return template.JS(b)
}

func applyHTMLSecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", htmlCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

// errorStatus maps engine errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNoHistory):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidMove), errors.Is(err, game.ErrLeavesKingInCheck):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) snapshot() game.BoardState {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.engine.State()
}

// apply runs fn under the engine lock and pushes the resulting state to
// websocket clients when fn succeeds. pushMu is taken before engineMu is
// released, so clients see states in the order they were produced.
func (s *Server) apply(fn func(*game.Engine) error) (game.BoardState, error) {
	s.engineMu.Lock()
	err := fn(s.engine)
	state := s.engine.State()
	if err != nil {
		s.engineMu.Unlock()
		return state, err
	}
	s.pushMu.Lock()
	s.engineMu.Unlock()

	s.hub.broadcast(stateMessage{Type: "state", State: state})
	s.pushMu.Unlock()
	return state, nil
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"state": s.snapshot()})
}

// ---- API: move ----

type moveBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	from, ok := game.CoordToSquare(body.From)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}
	to, ok := game.CoordToSquare(body.To)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to square")
		return
	}

	state, err := s.apply(func(e *game.Engine) error {
		return e.Move(game.MoveRequest{From: from, To: to})
	})
	if err != nil {
		w.WriteHeader(errorStatus(err))
		writeJSON(w, map[string]any{"error": err.Error(), "state": state})
		return
	}
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: legal destinations ----

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	from, ok := game.CoordToSquare(mux.Vars(r)["from"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}
	s.engineMu.Lock()
	dests := s.engine.LegalDestinations(from)
	s.engineMu.Unlock()

	if dests == nil {
		dests = []game.Coordinate{}
	}
	writeJSON(w, map[string]any{"from": from, "to": dests})
}

// ---- API: undo / reset ----

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.handleEngineAction(w, r, (*game.Engine).Undo)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.handleEngineAction(w, r, (*game.Engine).Reset)
}

func (s *Server) handleEngineAction(w http.ResponseWriter, r *http.Request, fn func(*game.Engine) error) {
	if r.Body != nil {
		r.Body.Close()
	}
	state, err := s.apply(fn)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, map[string]any{"state": state})
}
