package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"

	"snakearena/config"
	"snakearena/game"
)

// Server 持有注册表、发布器、调度器与所有在线连接
type Server struct {
	cfg   *config.Config
	rules game.Rules

	registry  *Registry
	publisher *Publisher
	scheduler *Scheduler
	metrics   *Metrics
	upgrader  websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	conns  map[SessionID]*ClientConn
	closed bool
}

func New(cfg *config.Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg: cfg,
		rules: game.Rules{
			Bounds:            game.Bounds{Width: cfg.Game.Width, Height: cfg.Game.Height},
			TurnDebounce:      cfg.Game.TurnDebounce,
			AutoplayThreshold: cfg.Game.AutoplayThreshold,
			FoodScore:         cfg.Game.FoodScore,
			MaxRecordedMoves:  cfg.Game.MaxRecordedMoves,
		},
		registry:  NewRegistry(),
		publisher: NewPublisher(),
		metrics:   &Metrics{},
		ctx:       ctx,
		cancel:    cancel,
		conns:     make(map[SessionID]*ClientConn),
	}
	s.scheduler = NewScheduler(cfg.Game.TickInterval, s.registry, s.publisher, s.metrics)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// PublicHandler 面向玩家：/ws、/healthz 与静态资源
func (s *Server) PublicHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Server.StaticDir)))
	return mux
}

// AdminHandler 管理与监控接口，只挂在 server.admin_addr 的独立监听上，
// 会话 ID 不会经由玩家端口暴露
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/sessions", s.HandleAdminSessions)
	mux.HandleFunc("/admin/currency", s.HandleAdminCurrency)
	mux.HandleFunc("/metrics", s.HandleMetrics)
	return mux
}

func (s *Server) Registry() *Registry { return s.registry }
func (s *Server) Metrics() *Metrics   { return s.metrics }

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.Server.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.Server.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

// track 登记连接；服务器已关闭时返回 false
func (s *Server) track(c *ClientConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c.id] = c
	return true
}

func (s *Server) untrack(id SessionID) {
	s.mu.Lock()
	delete(s.conns, id)
	s.mu.Unlock()
}

// Close 停止所有会话循环并断开所有连接
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	conns := make([]*ClientConn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	s.cancel()
	var merr *multierror.Error
	for _, c := range conns {
		if err := s.teardown(c); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
