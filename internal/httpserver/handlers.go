package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/order"
)

const maxOrderBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createOrder(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, order.Placeholders())
	case http.MethodPut:
		o, ok := s.decodeOrder(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, o)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/orders/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, order.Order{})
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := s.decodeOrder(w, r)
	if !ok {
		return
	}
	o = order.Clean(o)
	if o.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order: title is empty"})
		return
	}

	res := s.runner.Run(r.Context(), o)
	if !res.OK() {
		s.logger.Warn("order failed",
			zap.String("run_id", res.RunID),
			zap.String("step", res.Failure.Step),
			zap.Error(res.Failure),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"step":  res.Failure.Step,
			"error": res.Failure.Message,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message_id": res.MessageID})
}

func (s *Server) decodeOrder(w http.ResponseWriter, r *http.Request) (order.Order, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOrderBytes))
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return order.Order{}, false
	}
	o, err := order.Decode(raw)
	if err != nil {
		msg := "bad json"
		if errors.Is(err, order.ErrInvalid) {
			msg = err.Error()
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return order.Order{}, false
	}
	return o, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
