package hub

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	hub    *Hub
	logger *slog.Logger
}

func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger.With("handler", "observe"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/observe", h.handleObserve)
}

func (h *Handler) handleObserve(c echo.Context) error {
	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	conn := NewWSObserver(ws, h.logger)
	h.hub.Register(conn)

	h.logger.Info("observer connected", "observer_id", conn.ID(), "remote", ws.RemoteAddr().String())

	ctx := c.Request().Context()
	go conn.writePump(ctx)
	conn.readPump(ctx)

	h.hub.Unregister(conn.ID())

	h.logger.Info("observer disconnected", "observer_id", conn.ID())
	return nil
}
