package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsReadTimeout = 120 * time.Second

// WSMessage is a client frame: "parse", "tokens" or "ping".
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type WSSourcePayload struct {
	Source string `json:"source"`
}

// WSResponse is a server frame: "tree", "tokens", "pong" or "error".
type WSResponse struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// websocket parses every source the client sends for as long as the
// connection stays open.
func (s *Server) websocket(c *gin.Context) {
	log := s.logFor(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.WithField("remote", conn.RemoteAddr().String()).Debug("websocket connected")

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read error")
			} else {
				log.Debug("websocket closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		var resp WSResponse
		switch msg.Type {
		case "ping":
			resp = WSResponse{Type: "pong"}
		case "parse", "tokens":
			var payload WSSourcePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				resp = wsError("invalid_payload", "Invalid source payload")
				break
			}
			if msg.Type == "tokens" {
				resp = WSResponse{Type: "tokens", Payload: s.parser.Tokens(payload.Source)}
				break
			}
			result := s.parser.Parse(payload.Source)
			tree := result.Map()
			if id := s.record(c, "ws", result); id != "" {
				tree["id"] = id
			}
			resp = WSResponse{Type: "tree", Payload: tree}
		default:
			resp = wsError("unknown_type", "Unknown message type: "+msg.Type)
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).WithFields(logrus.Fields{"type": resp.Type}).Warn("websocket write failed")
			return
		}
	}
}

func wsError(code, message string) WSResponse {
	return WSResponse{Type: "error", Payload: WSErrorPayload{Code: code, Message: message}}
}
