package handlers

import (
	"encoding/json"
	"gameforge/internal/services"
	"gameforge/internal/store"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMessage 推送给浏览器的消息
type wsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WSHandler struct {
	store  *store.Store
	events services.Broker
}

func NewWSHandler(s *store.Store, events services.Broker) *WSHandler {
	return &WSHandler{store: s, events: events}
}

// Votes GET /ws/games/:id 订阅某个游戏的投票变化
func (h *WSHandler) Votes(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := h.store.GetGame(c.Request.Context(), gameID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for game %s: %v", gameID, err)
		return
	}

	sub := &voteSubscriber{conn: conn, send: make(chan []byte, 16), done: make(chan struct{})}
	cancel := h.events.Subscribe(gameID, sub.push)
	go sub.writePump()
	sub.readPump()
	cancel()
	close(sub.done)
}

type voteSubscriber struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// push 由 broker 回调；发送缓冲满时丢弃，客户端可以轮询补齐
func (s *voteSubscriber) push(event services.VoteEvent) {
	data, err := json.Marshal(wsMessage{Type: "vote_update", Payload: event})
	if err != nil {
		return
	}
	select {
	case s.send <- data:
	default:
		log.Printf("WebSocket send buffer full, dropping vote update for %s", event.GameID)
	}
}

func (s *voteSubscriber) readPump() {
	defer s.conn.Close()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			data, _ := json.Marshal(wsMessage{Type: "pong", Payload: "pong"})
			select {
			case s.send <- data:
			default:
			}
		}
	}
}

func (s *voteSubscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			return
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
