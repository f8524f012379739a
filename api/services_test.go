package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judgegodwins/chess-relay/chess"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	request, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	return request
}

func serve(server *Server, request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	server.Handler().ServeHTTP(response, request)
	return response
}

func decode(t *testing.T, response *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &env))
	return env
}

func bearer(t *testing.T, username string, ttl time.Duration) string {
	t.Helper()

	token, _, err := testMaker.CreateToken(username, ttl)
	require.NoError(t, err)
	return fmt.Sprintf("Bearer %v", token)
}

func TestTokenGenerator(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("returns token (happy case)", func(t *testing.T) {
		response := serve(server, newRequest(t, http.MethodPost, "/auth/username", map[string]string{"username": "judge"}))
		require.Equal(t, http.StatusOK, response.Code)

		var data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Token    string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(decode(t, response).Data, &data))
		require.Equal(t, "judge", data.Username)

		payload, err := testMaker.VerifyToken(data.Token)
		require.NoError(t, err)
		require.Equal(t, data.ID, payload.ID.String())
	})

	t.Run("invalid or no body", func(t *testing.T) {
		response := serve(server, newRequest(t, http.MethodPost, "/auth/username", map[string]string{}))
		require.Equal(t, http.StatusUnprocessableEntity, response.Code)
		require.Contains(t, response.Body.String(), "Username")
	})
}

func TestAuthMiddlewareAndTokenVerifier(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("allow valid token entry", func(t *testing.T) {
		request := newRequest(t, http.MethodGet, "/auth/verify", nil)
		request.Header.Set("Authorization", bearer(t, "judge", time.Minute))

		response := serve(server, request)
		require.Equal(t, http.StatusOK, response.Code)
		require.Contains(t, string(decode(t, response).Data), `"judge"`)
	})

	t.Run("disallow invalid token entry", func(t *testing.T) {
		request := newRequest(t, http.MethodGet, "/auth/verify", nil)
		request.Header.Set("Authorization", bearer(t, "judge", time.Minute)+"hhh")

		require.Equal(t, http.StatusUnauthorized, serve(server, request).Code)
	})

	t.Run("return unauthorized expired token entry", func(t *testing.T) {
		request := newRequest(t, http.MethodGet, "/auth/verify", nil)
		request.Header.Set("Authorization", bearer(t, "judge", -time.Minute))

		require.Equal(t, http.StatusUnauthorized, serve(server, request).Code)
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		request := newRequest(t, http.MethodGet, "/auth/verify", nil)
		require.Equal(t, http.StatusUnauthorized, serve(server, request).Code)

		request.Header.Set("Authorization", "Basic abc")
		require.Equal(t, http.StatusUnauthorized, serve(server, request).Code)
	})
}

func boardData(t *testing.T, server *Server) (turn string, fen string) {
	t.Helper()

	response := serve(server, newRequest(t, http.MethodGet, "/board", nil))
	require.Equal(t, http.StatusOK, response.Code)

	var data struct {
		Board     chess.Grid `json:"board"`
		Check     bool       `json:"check"`
		Checkmate bool       `json:"checkmate"`
		Turn      string     `json:"turn"`
		FEN       string     `json:"fen"`
	}
	require.NoError(t, json.Unmarshal(decode(t, response).Data, &data))
	require.Len(t, data.Board, chess.Size)
	require.False(t, data.Checkmate)

	return data.Turn, data.FEN
}

func TestBoardState(t *testing.T) {
	board := chess.NewBoard()
	require.NoError(t, board.Move(chess.Cell{Row: 6, Col: 4}, chess.Cell{Row: 5, Col: 4}))

	server := newTestServer(t, board)

	turn, fen := boardData(t, server)
	require.Equal(t, "Black", turn)
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b - - 0 1", fen)
}

func TestResetBoard(t *testing.T) {
	board := chess.NewBoard()
	require.NoError(t, board.Move(chess.Cell{Row: 6, Col: 4}, chess.Cell{Row: 5, Col: 4}))

	server := newTestServer(t, board)

	t.Run("requires a token", func(t *testing.T) {
		response := serve(server, newRequest(t, http.MethodPost, "/board/reset", nil))
		require.Equal(t, http.StatusUnauthorized, response.Code)

		turn, _ := boardData(t, server)
		require.Equal(t, "Black", turn)
	})

	t.Run("restores the starting position", func(t *testing.T) {
		request := newRequest(t, http.MethodPost, "/board/reset", nil)
		request.Header.Set("Authorization", bearer(t, "judge", time.Minute))

		response := serve(server, request)
		require.Equal(t, http.StatusAccepted, response.Code)

		turn, fen := boardData(t, server)
		require.Equal(t, "White", turn)
		require.Equal(t, chess.NewBoard().FEN(), fen)
	})
}

func TestClientsAndHealth(t *testing.T) {
	server := newTestServer(t, nil)

	response := serve(server, newRequest(t, http.MethodGet, "/clients", nil))
	require.Equal(t, http.StatusOK, response.Code)
	require.JSONEq(t, `[]`, string(decode(t, response).Data))

	response = serve(server, newRequest(t, http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, response.Code)
	require.Equal(t, "ok", response.Body.String())
}

func TestCORS(t *testing.T) {
	server := newTestServer(t, nil)

	request := newRequest(t, http.MethodGet, "/healthz", nil)
	request.Header.Set("Origin", "http://localhost:8080")
	response := serve(server, request)
	require.Equal(t, "http://localhost:8080", response.Header().Get("Access-Control-Allow-Origin"))

	request = newRequest(t, http.MethodGet, "/healthz", nil)
	request.Header.Set("Origin", "http://evil.example")
	response = serve(server, request)
	require.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
}
