package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calc/internal/providers/calc"
	"github.com/GriffinCanCode/calc/internal/shared/id"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// Message types
const (
	TypeEvaluate = "evaluate"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeResult   = "result"
	TypeError    = "error"
	TypeSystem   = "system"
)

// MaxMessageBytes bounds a single inbound frame
const MaxMessageBytes = 16 * 1024

const writeTimeout = 10 * time.Second

// Handler manages evaluation streams. Messages on one connection are
// handled strictly in order.
type Handler struct {
	provider      *calc.Provider
	metrics       *monitoring.Metrics
	logger        *logging.Logger
	maxExpression int
	upgrader      websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(provider *calc.Provider, metrics *monitoring.Metrics, logger *logging.Logger, maxExpression int) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxExpression <= 0 {
		maxExpression = 1024
	}
	return &Handler{
		provider:      provider,
		metrics:       metrics,
		logger:        logger.Named("ws"),
		maxExpression: maxExpression,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves messages until the peer leaves
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	connID := id.NewConnectionID().String()
	log := h.logger.With(zap.String("connection_id", connID))
	conn.SetReadLimit(MaxMessageBytes)

	if err := h.send(conn, types.WSReply{Type: TypeSystem, Message: "connected", ConnectionID: connID}); err != nil {
		return
	}

	ctx := c.Request.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		var reply types.WSReply
		if err := sonic.Unmarshal(data, &msg); err != nil {
			reply = types.WSReply{Type: TypeError, Error: "invalid message"}
		} else {
			reply = h.dispatch(ctx, msg)
		}

		if err := h.send(conn, reply); err != nil {
			log.Debug("WebSocket write error", zap.Error(err))
			return
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, msg types.WSMessage) types.WSReply {
	switch msg.Type {
	case TypeEvaluate:
		return h.evaluate(ctx, msg)
	case TypePing:
		return types.WSReply{Type: TypePong}
	default:
		return types.WSReply{Type: TypeError, Error: fmt.Sprintf("unknown message type: %q", msg.Type)}
	}
}

func (h *Handler) evaluate(ctx context.Context, msg types.WSMessage) types.WSReply {
	mode, err := h.provider.ResolveMode(msg.Mode)
	if err != nil {
		return types.WSReply{Type: TypeError, Error: err.Error()}
	}
	if len(msg.Expression) > h.maxExpression {
		err := fmt.Errorf("%w: expression exceeds %d bytes", expr.ErrRead, h.maxExpression)
		return errorReply(err, mode)
	}

	n, err := h.provider.Evaluate(ctx, msg.Expression, mode)
	if err != nil {
		return errorReply(err, mode)
	}

	v := n.Float64()
	return types.WSReply{Type: TypeResult, Result: &v, Formatted: n.String(), Mode: mode.String()}
}

func errorReply(err error, mode expr.Mode) types.WSReply {
	kind := expr.KindOf(err)
	reply := types.WSReply{
		Type:  TypeError,
		Error: err.Error(),
		Kind:  kind.String(),
		Code:  expr.ExitCode(kind),
		Mode:  mode.String(),
	}
	var syn *expr.SyntaxError
	if errors.As(err, &syn) {
		offset := syn.Offset
		reply.Offset = &offset
	}
	return reply
}

func (h *Handler) send(conn *websocket.Conn, reply types.WSReply) error {
	reply.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(reply)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
