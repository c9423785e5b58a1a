package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snakearena/config"
	"snakearena/server"
)

// snakearena 入口：每个 WebSocket 连接一局独立的贪吃蛇
func main() {
	var cfgPath, addr string
	flag.StringVar(&cfgPath, "config", "", "config file (.toml or .yaml); empty uses defaults")
	flag.StringVar(&addr, "addr", "", "server listen address, overrides config, e.g. :8000")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := server.InitLogger(cfg.Logging); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	srv := server.New(cfg)

	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.PublicHandler()}
	go func() {
		server.Log.Infof("snakearena listening on %s (board %dx%d, tick %s)",
			cfg.Server.Addr, cfg.Game.Width, cfg.Game.Height, cfg.Game.TickInterval)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 管理与监控接口单独监听，不与玩家端口共用
	var adminSrv *http.Server
	if cfg.Server.AdminAddr != "" {
		adminSrv = &http.Server{Addr: cfg.Server.AdminAddr, Handler: srv.AdminHandler()}
		go func() {
			server.Log.Infof("admin listening on %s", cfg.Server.AdminAddr)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				server.Log.Fatalf("admin listen: %v", err)
			}
		}()
	}

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		server.Log.Warnf("http shutdown: %v", err)
	}
	if adminSrv != nil {
		if err := adminSrv.Shutdown(ctx); err != nil {
			server.Log.Warnf("admin shutdown: %v", err)
		}
	}
	if err := srv.Close(); err != nil {
		server.Log.Warnf("close sessions: %v", err)
	}
}
