package webhook

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/assistant"
)

// InboundMessage is the gateway's payload for one chat message.
type InboundMessage struct {
	SenderID   string `json:"sender_id" validate:"required,max=64"`
	SenderName string `json:"sender_name" validate:"max=128"`
	Text       string `json:"text" validate:"max=4096"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageHandler struct {
	handler MessageHandler
	limiter *senderLimiter
	logger  *slog.Logger
}

func (h *messageHandler) receive(c echo.Context) error {
	var in InboundMessage
	if err := c.Bind(&in); err != nil {
		webhookRequests.WithLabelValues(statusInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
	}
	if err := c.Validate(&in); err != nil {
		webhookRequests.WithLabelValues(statusInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if !h.limiter.allow(in.SenderID) {
		webhookRequests.WithLabelValues(statusLimited).Inc()
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many messages"})
	}

	ctx := c.Request().Context()
	err := h.handler.HandleMessage(ctx, assistant.Message{
		Text:              in.Text,
		SenderID:          in.SenderID,
		SenderDisplayName: in.SenderName,
	})
	if err != nil {
		webhookRequests.WithLabelValues(statusFailed).Inc()
		h.logger.ErrorContext(ctx, "message processing failed",
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.Any("error", err),
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "message processing failed"})
	}

	webhookRequests.WithLabelValues(statusOK).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}
