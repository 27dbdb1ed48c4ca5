package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"irispredict/ui"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// clientMessage 客户端消息: set, predict, ping
type clientMessage struct {
	Type  string   `json:"type"`
	Field string   `json:"field,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

type serverMessage struct {
	Type  string     `json:"type"`
	Data  *ui.Render `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// SessionHub 管理WebSocket会话
//
// Each connection owns its slider state and handles one event at a time:
// a "set" event re-renders the page, a "predict" event renders the page
// together with the prediction.
type SessionHub struct {
	handler  *Handler
	upgrader websocket.Upgrader
	mu       sync.Mutex
	sessions map[*session]struct{}
	nextID   atomic.Uint64
}

type session struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	controls *ui.Controls
	locale   language.Tag
	hub      *SessionHub
}

func NewSessionHub(handler *Handler) *SessionHub {
	return &SessionHub{
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		sessions: make(map[*session]struct{}),
	}
}

// ServeHTTP 处理WebSocket连接
func (h *SessionHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.handler.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s := &session{
		id:       fmt.Sprintf("session_%d", h.nextID.Add(1)),
		conn:     conn,
		send:     make(chan []byte, 16),
		controls: ui.NewControls(),
		locale:   h.handler.locale(r),
		hub:      h,
	}
	h.register(s)

	go s.writePump()
	go s.readPump()
}

// Len 返回活跃会话数
func (h *SessionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll 关闭所有会话
func (h *SessionHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		s.conn.Close()
	}
}

func (h *SessionHub) register(s *session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	total := len(h.sessions)
	h.mu.Unlock()
	h.handler.logger.Info("session opened", zap.String("session", s.id), zap.Int("total", total))
}

func (h *SessionHub) unregister(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	total := len(h.sessions)
	h.mu.Unlock()
	h.handler.logger.Info("session closed", zap.String("session", s.id), zap.Int("total", total))
}

// readPump 读取并依次处理客户端事件
func (s *session) readPump() {
	defer func() {
		s.hub.unregister(s)
		close(s.send)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	presenter := s.hub.handler.presenter
	s.render(presenter.Page(s.controls, s.locale))

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.hub.handler.logger.Warn("websocket read error", zap.String("session", s.id), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.reply(serverMessage{Type: "error", Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "set":
			if msg.Value == nil {
				s.reply(serverMessage{Type: "error", Error: fmt.Sprintf("missing value for %q", msg.Field)})
				continue
			}
			if err := s.controls.Set(msg.Field, *msg.Value); err != nil {
				s.reply(serverMessage{Type: "error", Error: err.Error()})
				continue
			}
			s.render(presenter.Page(s.controls, s.locale))
		case "predict":
			s.render(presenter.PredictAndRender(s.controls, s.locale))
		case "ping":
			s.reply(serverMessage{Type: "pong"})
		default:
			s.reply(serverMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)})
		}
	}
}

// writePump 写入消息并定期发送ping
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.hub.handler.logger.Warn("websocket write error", zap.String("session", s.id), zap.Error(err))
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

func (s *session) render(render ui.Render) {
	s.reply(serverMessage{Type: "render", Data: &render})
}

func (s *session) reply(msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.hub.handler.logger.Error("marshal session message", zap.Error(err))
		return
	}
	select {
	case s.send <- payload:
	default:
		s.hub.handler.logger.Warn("session send queue is full, dropping message", zap.String("session", s.id))
	}
}
