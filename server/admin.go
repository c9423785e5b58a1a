package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"snakearena/game"
)

type sessionSummary struct {
	ID       SessionID `json:"id"`
	Score    int       `json:"score"`
	Currency int       `json:"primeagems"`
	Deaths   int       `json:"death_count"`
	Autoplay bool      `json:"autoplay_enabled"`
	Length   int       `json:"length"`
	GameOver bool      `json:"game_over"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminSessions 列出在线会话概要
// GET /admin/sessions
func (s *Server) HandleAdminSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	out := make([]sessionSummary, 0, s.registry.Len())
	s.registry.Each(func(id SessionID, sess *game.Session) {
		out = append(out, sessionSummary{
			ID:       id,
			Score:    sess.Score(),
			Currency: sess.Currency(),
			Deaths:   sess.Deaths(),
			Autoplay: sess.AutoplayEnabled(),
			Length:   sess.Snake().Len(),
			GameOver: sess.GameOver(),
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
}

// HandleAdminCurrency 查询或发放会话货币
// GET  /admin/currency?session=ID
// POST /admin/currency?session=ID&amount=N
func (s *Server) HandleAdminCurrency(w http.ResponseWriter, r *http.Request) {
	id := SessionID(r.URL.Query().Get("session"))
	if id == "" {
		http.Error(w, "missing session query", http.StatusBadRequest)
		return
	}

	var amount int
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		n, err := strconv.Atoi(r.URL.Query().Get("amount"))
		if err != nil || n <= 0 {
			http.Error(w, "amount must be a positive integer", http.StatusBadRequest)
			return
		}
		amount = n
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var balance int
	err := s.registry.WithSession(id, func(sess *game.Session) {
		sess.AddCurrency(amount)
		balance = sess.Currency()
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if amount > 0 {
		Log.Infow("currency granted", "session", id, "amount", amount, "balance", balance)
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}

// HandleMetrics 输出运行指标
// GET /metrics
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	payload := s.metrics.Snapshot()
	payload["registry_sessions"] = s.registry.Len()
	writeJSON(w, http.StatusOK, payload)
}
