package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

const (
	maxMessageSize = 1 << 12
	writeWait      = 10 * time.Second
)

type matchUseCase interface {
	NewMatch(ctx context.Context) (*entity.MatchView, error)
	GetMatch(ctx context.Context, id string) (*entity.MatchView, error)
	MakeMove(ctx context.Context, id string, move supergame.Move) (*entity.MatchView, error)
}

type client struct {
	conn *websocket.Conn
}

func (that *client) send(message Message) error {
	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger   *slog.Logger
	uMatch   matchUseCase
	upgrader websocket.Upgrader
	srv      *http.Server

	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, uMatch matchUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uMatch: uMatch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.srv = &http.Server{
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionTurn] = server.handleGameTurn

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(port string) error {
	that.srv.Addr = ":" + port

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(r.Context(), c); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			if err = that.sendError(c, message.Action, codeUnknownAction, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
