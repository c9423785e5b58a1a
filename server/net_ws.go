package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"snakearena/config"
	"snakearena/game"
)

// ClientConn 一个 WebSocket 连接及其会话资源
type ClientConn struct {
	id      SessionID
	ws      *websocket.Conn
	sub     *Subscription
	loop    *SessionLoop
	enc     Encoder
	net     config.NetworkConfig
	closing sync.Once
}

// writePump 独立协程，将订阅到的快照写出到 WS，并定时 Ping
func (c *ClientConn) writePump() {
	ping := time.NewTicker(c.net.PingInterval)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.sub.C():
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.net.WriteTimeout))
			if !ok {
				// 订阅已取消：会话结束
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(c.enc.MessageType(), msg); err != nil {
				Log.Debugw("write failed", "session", c.id, "err", err)
				return
			}
		case <-ping.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.net.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端意图并在会话锁内生效；退出即触发会话清理
func (c *ClientConn) readPump(s *Server) {
	defer func() { _ = s.teardown(c) }()
	c.ws.SetReadLimit(c.net.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.net.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.net.ReadTimeout))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Warnw("connection error", "session", c.id, "err", err)
			}
			return
		}
		s.handleInput(c.id, payload)
	}
}

// handleInput 协议错误只记录并丢弃，不影响读循环
func (s *Server) handleInput(id SessionID, payload []byte) {
	intent, err := DecodeIntent(payload)
	if err != nil {
		s.metrics.IncInputsMalformed()
		Log.Warnw("drop malformed message", "session", id, "err", err)
		return
	}
	if intent.Kind == IntentNone {
		s.metrics.IncInputsIgnored()
		Log.Debugw("ignore action", "session", id, "action", intent.Action)
		return
	}

	var accepted bool
	err = s.registry.WithSession(id, func(sess *game.Session) {
		accepted = intent.Apply(sess)
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// 连接正在关闭，会话已先一步移除
			Log.Debugw("input for removed session", "session", id, "action", intent.Action)
		} else {
			Log.Errorw("apply input failed", "session", id, "action", intent.Action, "err", err)
		}
		return
	}
	if accepted {
		s.metrics.IncInputsAccepted()
	} else {
		s.metrics.IncInputsRejected()
	}
	Log.Debugw("input applied", "session", id, "action", intent.Action, "accepted", accepted)
}

// HandleWS WebSocket 接入：/ws?format=json|msgpack
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	enc, err := EncoderFor(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnw("upgrade error", "remote", r.RemoteAddr, "err", err)
		return
	}

	id := NewSessionID()
	if err := s.registry.Create(id, s.rules); err != nil {
		Log.Errorw("create session failed", "session", id, "err", err)
		_ = ws.Close()
		return
	}

	c := &ClientConn{
		id:  id,
		ws:  ws,
		sub: s.publisher.Subscribe(id, s.cfg.Network.SendQueue),
		enc: enc,
		net: s.cfg.Network,
	}
	c.loop = s.scheduler.Start(s.ctx, id, enc)
	s.metrics.IncSessionsOpened()
	if !s.track(c) {
		_ = s.teardown(c)
		return
	}
	Log.Infow("session opened", "session", id, "remote", r.RemoteAddr, "format", enc.Name())

	go c.writePump()
	go c.readPump(s)
}

// teardown 停止循环、移除会话、取消订阅并关闭连接；每个连接只执行一次
func (s *Server) teardown(c *ClientConn) error {
	var err error
	c.closing.Do(func() {
		c.loop.Stop()
		s.registry.Remove(c.id)
		s.publisher.Unsubscribe(c.sub)
		s.untrack(c.id)
		s.metrics.IncSessionsClosed()
		if cerr := c.ws.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = fmt.Errorf("close session %s: %w", c.id, cerr)
		}
		Log.Infow("session closed", "session", c.id)
	})
	return err
}
