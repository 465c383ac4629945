package api

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/domain/models"
	svcmetrics "ProbabilityPit/internal/service/metrics"
	"ProbabilityPit/internal/services/risk"
	"ProbabilityPit/internal/usecase"
	xhttp "ProbabilityPit/pkg/http"
	xlogger "ProbabilityPit/pkg/logger"
)

const (
	wsReadLimit    = 1024
	wsWriteTimeout = 5 * time.Second
	wsSendBuffer   = 16
)

type wizardError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// WizardWSHandler runs one risk wizard per websocket connection.
type WizardWSHandler struct {
	logger       *xlogger.Logger
	risk         *usecase.RiskUsecase
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewWizardWSHandler accepts any origin when origins is empty or contains "*".
func NewWizardWSHandler(logger *xlogger.Logger, risk *usecase.RiskUsecase, origins []string, pingInterval time.Duration) *WizardWSHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return &WizardWSHandler{
		logger:       logger,
		risk:         risk,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

func (h *WizardWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/risk", h.Serve)
}

// Serve upgrades the request and blocks until the client goes away.
func (h *WizardWSHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	session := uuid.NewString()
	log := h.logger.With(xlogger.String("session", session))
	log.Debug("wizard session opened")
	svcmetrics.WizardSessions.Inc()

	ctx, cancel := context.WithCancel(c.Request().Context())
	send := make(chan interface{}, wsSendBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(ctx, conn, send, log)
	}()

	defer func() {
		cancel()
		<-done
		_ = conn.Close()
		svcmetrics.WizardSessions.Dec()
		log.Debug("wizard session closed")
	}()

	state := risk.NewWizard()
	send <- h.snapshot(session, state)
	h.readPump(ctx, conn, session, &state, send, log)
	return nil
}

func (h *WizardWSHandler) readPump(ctx context.Context, conn *websocket.Conn, session string, state *models.WizardState, send chan<- interface{}, log *xlogger.Logger) {
	wait := h.pingInterval * 2
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("wizard read failed", xlogger.Error(err))
			}
			return
		}

		next, reply := h.handle(ctx, session, *state, data)
		*state = next
		select {
		case send <- reply:
		case <-ctx.Done():
			return
		}
	}
}

// handle decodes and applies one client frame, returning the new state and the reply.
func (h *WizardWSHandler) handle(ctx context.Context, session string, state models.WizardState, data []byte) (models.WizardState, interface{}) {
	var msg models.WizardMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		svcmetrics.APIErrors.WithLabelValues("ws_risk", "bad_frame").Inc()
		return state, wizardError{Type: "error", Error: "malformed message"}
	}
	if verrs := xhttp.ValidateStruct(ctx, &msg); len(verrs) > 0 {
		svcmetrics.APIErrors.WithLabelValues("ws_risk", verrs[0].Code).Inc()
		return state, wizardError{Type: "error", Error: verrs[0].Message}
	}

	next, err := risk.Reduce(state, models.WizardAction(msg.Type), msg.Field, msg.Value)
	if err != nil {
		return state, wizardError{Type: "error", Error: err.Error()}
	}
	return next, h.snapshot(session, next)
}

// snapshot drops the report when it holds numbers JSON cannot carry.
func (h *WizardWSHandler) snapshot(session string, state models.WizardState) models.WizardSnapshot {
	snap := h.risk.Snapshot(session, state)
	if snap.Report != nil && !risk.Finite(*snap.Report) {
		snap.Report = nil
	}
	return snap
}

// writePump owns all writes. A failed write closes the connection so the read loop ends too.
func (h *WizardWSHandler) writePump(ctx context.Context, conn *websocket.Conn, send <-chan interface{}, log *xlogger.Logger) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteTimeout))
			return
		case msg := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("wizard write failed", xlogger.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
