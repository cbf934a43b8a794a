package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/schuaBob/crew-server-go/internal/game"
	"github.com/schuaBob/crew-server-go/internal/repository"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one connected websocket peer. gameID is the game the client
// watches; it is written on the client's read goroutine and read by the hub,
// so access goes through watch and watching.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	gameID string
}

func (c *Client) watch(gameID string) {
	c.mu.Lock()
	c.gameID = gameID
	c.mu.Unlock()
}

func (c *Client) watching() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

// broadcastMsg is one frame fanned out to every client watching a game.
type broadcastMsg struct {
	gameID  string
	payload []byte
}

// Hub tracks connected clients and fans game state out to them. The clients
// map is touched only inside run, so registration, removal, and broadcast all
// serialize through its channels.
type Hub struct {
	logger     *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
}

func newHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("client unregistered")
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.watching() != msg.gameID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
				}
			}
		}
	}
}

// Server exposes the game manager over websockets. When a repository is
// configured, every finished game is persisted as a result row.
type Server struct {
	logger     *zap.Logger
	manager    *game.Manager
	repo       *repository.GameRepository
	hub        *Hub
	defaultCfg game.Config
}

// New creates a server. repo may be nil to disable persistence.
func New(logger *zap.Logger, manager *game.Manager, repo *repository.GameRepository, defaultCfg game.Config) *Server {
	return &Server{
		logger:     logger,
		manager:    manager,
		repo:       repo,
		hub:        newHub(logger),
		defaultCfg: defaultCfg,
	}
}

// Handler returns the HTTP mux with the websocket endpoint mounted.
func (s *Server) Handler(ctx context.Context) http.Handler {
	go s.hub.run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump(s)
}

func (c *Client) readPump(s *Server) {
	defer func() {
		s.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			s.logger.Warn("bad websocket message", zap.Error(err))
			continue
		}
		s.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func (s *Server) handleMessage(client *Client, msg WSMessage) {
	switch msg.Type {
	case "create_game":
		cfg := s.defaultCfg
		if msg.Config != nil {
			cfg = *msg.Config
		}
		g, err := s.manager.CreateGame(cfg, msg.Seed)
		if err != nil {
			s.sendError(client, err)
			return
		}
		client.watch(g.ID())
		s.send(client, WSMessage{Type: "game_state", GameID: g.ID(), Data: stateDTO(g.View())})

	case "state":
		g, ok := s.manager.Game(msg.GameID)
		if !ok {
			s.sendError(client, errors.New("game not found"))
			return
		}
		client.watch(msg.GameID)
		s.send(client, WSMessage{Type: "game_state", GameID: g.ID(), Data: stateDTO(g.View())})

	case "legal_moves":
		g, ok := s.manager.Game(msg.GameID)
		if !ok {
			s.sendError(client, errors.New("game not found"))
			return
		}
		moves := g.LegalMoves(msg.Seat)
		cards := make([]string, len(moves))
		for i, card := range moves {
			cards[i] = card.String()
		}
		s.send(client, WSMessage{Type: "legal_moves", GameID: msg.GameID, Seat: msg.Seat, Data: cards})

	case "play_card":
		s.handlePlay(client, msg)

	default:
		s.sendError(client, errors.New("unknown message type: "+msg.Type))
	}
}

func (s *Server) handlePlay(client *Client, msg WSMessage) {
	card, err := game.ParseCard(msg.Card)
	if err != nil {
		s.sendError(client, err)
		return
	}

	outcome, err := s.manager.Play(msg.GameID, msg.Seat, card)
	if err != nil {
		s.sendError(client, err)
		return
	}

	s.send(client, WSMessage{Type: "turn_outcome", GameID: msg.GameID, Data: outcomeDTO(outcome)})

	g, ok := s.manager.Game(msg.GameID)
	if !ok {
		return
	}
	state, _ := json.Marshal(WSMessage{Type: "game_state", GameID: msg.GameID, Data: stateDTO(g.View())})
	s.hub.broadcast <- broadcastMsg{gameID: msg.GameID, payload: state}

	if g.IsTerminal() {
		over, _ := json.Marshal(WSMessage{Type: "game_over", GameID: msg.GameID, Data: outcomeDTO(outcome)})
		s.hub.broadcast <- broadcastMsg{gameID: msg.GameID, payload: over}
		s.persistResult(g)
	}
}

// persistResult writes the finished game to the repository, if configured.
func (s *Server) persistResult(g *game.Game) {
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := g.Config()
	rec := repository.GameRecord{
		ID:         g.ID(),
		Seed:       g.Seed(),
		Colors:     cfg.Colors,
		Ranks:      cfg.Ranks,
		Rockets:    cfg.Rockets,
		Players:    cfg.Players,
		Tasks:      cfg.Tasks,
		Outcome:    g.State().String(),
		Tricks:     g.TrickNumber(),
		Reason:     g.TerminationReason(),
		StartedAt:  g.StartedAt(),
		FinishedAt: time.Now(),
	}
	if err := s.repo.SaveResult(ctx, rec); err != nil {
		s.logger.Warn("game result not persisted",
			zap.String("game_id", g.ID()),
			zap.Error(err),
		)
	}
}

func (s *Server) send(client *Client, msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("marshal response failed", zap.Error(err))
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

func (s *Server) sendError(client *Client, err error) {
	s.send(client, WSMessage{Type: "error", Error: err.Error()})
}
