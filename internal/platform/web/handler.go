// Package web bridges Dog Dash to browser renderers over a websocket.
// Each connection owns one game that ticks on the server; the browser
// sends presses and draws the snapshots it receives.
package web

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/storage"
)

const (
	writeWait    = 2 * time.Second
	inputBacklog = 16
)

// Client message types.
const (
	TypeJump    = "jump"
	TypeRestart = "restart"
	TypePause   = "pause"

	// TypeState tags every server frame.
	TypeState = "state"
)

type clientMessage struct {
	Type string `json:"type"`
}

// stateMessage is one server frame: the snapshot of a tick.
type stateMessage struct {
	Type string `json:"type"`
	Tick uint64 `json:"tick"`
	dogdash.Snapshot
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Logger   *log.Logger
	Store    *storage.Store // Optional; finished runs are saved when set
	TickRate int
	Seed     int64 // Zero picks a time based seed per connection
}

// Handler upgrades requests to websockets and runs one game per
// connection.
type Handler struct {
	cfg      HandlerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return &Handler{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handle serves /ws. The optional query parameter level selects a fixed
// course; without it the endless run is played.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	game := dogdash.NewInfinite()
	if level != "" {
		game = dogdash.NewLevels()
		game.SelectLevel(level)
	}

	seed := h.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{TickRate: h.cfg.TickRate, Seed: seed})

	logger := h.logger.With("remote", r.RemoteAddr, "game", game.ID())
	logger.Info("session started", "level", level)

	inputs := make(chan core.Action, inputBacklog)
	done := make(chan struct{})
	go h.readLoop(conn, inputs, done, logger)

	ticks := h.run(conn, game, inputs, done, logger)
	logger.Info("session ended", "ticks", ticks)
}

// readLoop decodes client messages into actions until the connection
// fails. It closes done on exit.
func (h *Handler) readLoop(conn *websocket.Conn, inputs chan<- core.Action, done chan<- struct{}, logger *log.Logger) {
	defer close(done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", "err", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			logger.Debug("discarding malformed message", "err", err)
			continue
		}

		action, ok := actionFor(msg.Type)
		if !ok {
			logger.Debug("discarding unknown message", "type", msg.Type)
			continue
		}

		// A full backlog means the ticker is behind; the press is dropped.
		select {
		case inputs <- action:
		default:
		}
	}
}

func actionFor(typ string) (core.Action, bool) {
	switch typ {
	case TypeJump:
		return core.ActionJump, true
	case TypeRestart:
		return core.ActionRestart, true
	case TypePause:
		return core.ActionPause, true
	}
	return core.ActionNone, false
}

// run ticks game at the configured rate and writes a frame per tick. It is
// the only writer on conn. It returns the number of ticks played.
func (h *Handler) run(conn *websocket.Conn, game *dogdash.Game, inputs <-chan core.Action, done <-chan struct{}, logger *log.Logger) uint64 {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	frame := core.NewInputFrame()
	var tick uint64

	// The first frame shows the start screen before any tick.
	if err := h.write(conn, stateMessage{Type: TypeState, Snapshot: game.Snapshot()}); err != nil {
		logger.Warn("write failed", "err", err)
		return 0
	}

	for {
		select {
		case <-done:
			return tick

		case a := <-inputs:
			frame.Set(a)

		case <-ticker.C:
			tick++
			result := game.Step(frame)
			frame.Clear()

			if result.Ended() {
				h.saveRun(game, result.State, logger)
			}

			if err := h.write(conn, stateMessage{Type: TypeState, Tick: tick, Snapshot: game.Snapshot()}); err != nil {
				logger.Warn("write failed", "err", err)
				return tick
			}
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, msg stateMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Handler) saveRun(game *dogdash.Game, st core.GameState, logger *log.Logger) {
	if h.cfg.Store == nil || st.Score == 0 {
		return
	}
	entry := storage.ScoreEntry{GameID: game.ID(), Score: st.Score}
	entry.Course, entry.Cause = game.RunSummary()
	if _, err := h.cfg.Store.SaveRun(entry); err != nil {
		logger.Warn("save run", "err", err)
	}
}
