package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/chess-relay/tokens"
	"github.com/judgegodwins/chess-relay/util"
	"github.com/judgegodwins/chess-relay/ws"
	"github.com/rs/cors"
)

type Server struct {
	config     *util.Config
	relay      *ws.Relay
	wsManager  *ws.Manager
	tokenMaker tokens.Maker
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(config *util.Config, relay *ws.Relay, maker tokens.Maker) *Server {
	router := gin.Default()

	server := &Server{
		config:     config,
		relay:      relay,
		wsManager:  ws.NewManager(relay, maker, config.AllowedOrigins, config.SendQueue, int64(config.MaxMessageSize)),
		tokenMaker: maker,
		router:     router,
	}

	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	router.GET("/ws", server.wsManager.ServeWS)
	router.StaticFS("/frontend", http.Dir(config.StaticDir))
	router.GET("/healthz", server.Health)
	router.POST("/auth/username", server.TokenGenerator)
	router.GET("/auth/verify", server.AuthMiddleware, server.GetTokenData)
	router.GET("/board", server.BoardState)
	router.POST("/board/reset", server.AuthMiddleware, server.ResetBoard)
	router.GET("/clients", server.Clients)

	return server
}

// Handler is the router wrapped with CORS for the configured origins.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router)
}

// Start serves until Shutdown is called. It returns nil at once if
// Shutdown already ran.
func (s *Server) Start() error {
	log.Printf("listening on %v", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops accepting requests and closes live websocket sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	s.wsManager.CloseAll()

	return err
}
