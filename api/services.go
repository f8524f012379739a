package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/chess-relay/chess"
	"github.com/judgegodwins/chess-relay/http_utils"
	"github.com/judgegodwins/chess-relay/ws"
)

type usernameRequest struct {
	Username string `json:"username" binding:"required,max=32"`
}

// Generates a token using the username passed as request body
func (s *Server) TokenGenerator(c *gin.Context) {
	var data usernameRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.ValidationError(err))
		return
	}

	token, payload, err := s.tokenMaker.CreateToken(data.Username, s.config.TokenTTL)

	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("Auth data", gin.H{
		"id":       payload.ID.String(),
		"username": payload.Username,
		"token":    token,
	}))
}

func (s *Server) GetTokenData(c *gin.Context) {
	payload, ok := GetPayload(c)

	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		log.Println(errors.New("value in auth_payload key of request context could not be casted to *tokens.Payload"))
		return
	}

	c.JSON(http.StatusOK, successResponse("success", payload))
}

// BoardState returns the live position as the relay sees it.
func (s *Server) BoardState(c *gin.Context) {
	state, err := s.relay.Snapshot(c.Request.Context())

	if err != nil {
		log.Println("error reading board snapshot:", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse("game relay unavailable"))
		return
	}

	board, err := chess.FromGrid(state.Board, state.Turn)

	if err != nil {
		log.Println("error rebuilding board snapshot:", err)
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("board", gin.H{
		"board":     state.Board,
		"check":     state.Check,
		"checkmate": state.Checkmate,
		"turn":      state.Turn,
		"fen":       board.FEN(),
	}))
}

func (s *Server) ResetBoard(c *gin.Context) {
	payload, _ := GetPayload(c)

	if err := s.relay.Submit(c.Request.Context(), ws.ResetAction{}); err != nil {
		log.Println("error resetting board:", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse("game relay unavailable"))
		return
	}

	if payload != nil {
		log.Printf("board reset by %v", payload.Username)
	}

	c.JSON(http.StatusAccepted, successResponse[any]("board reset", nil))
}

func (s *Server) Clients(c *gin.Context) {
	members, err := s.relay.Members(c.Request.Context())

	if err != nil {
		log.Println("error listing clients:", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse("game relay unavailable"))
		return
	}

	c.JSON(http.StatusOK, successResponse("clients", members))
}

func (s *Server) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
