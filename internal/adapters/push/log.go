package push

import (
	"context"

	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"

	"go.uber.org/zap"
)

// LogPusher is used when FCM is not configured: deliveries are only logged.
type LogPusher struct {
	logger *zap.Logger
}

func NewLogPusher(logger *zap.Logger) *LogPusher {
	return &LogPusher{logger: logger}
}

func (p *LogPusher) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*notificationPort.PushResult, error) {
	p.logger.Info("📨 Push (not delivered, FCM disabled)",
		zap.Int("tokens", len(tokens)),
		zap.String("title", title),
		zap.Any("data", data),
	)
	return &notificationPort.PushResult{SuccessCount: len(tokens)}, nil
}
