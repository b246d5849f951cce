package push

import (
	"context"
	"fmt"

	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	// FCM allows at most 500 tokens per multicast.
	maxMulticastTokens = 500

	loggedTokenPrefix = 8
)

// FCMPusher sends notifications through Firebase Cloud Messaging.
type FCMPusher struct {
	client *messaging.Client
	logger *zap.Logger
}

func NewFCMPusher(ctx context.Context, credentialsPath string, logger *zap.Logger) (*FCMPusher, error) {
	logger.Info("Initializing Firebase", zap.String("credentials", credentialsPath))

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}

	logger.Info("✅ Firebase Messaging client initialized")
	return &FCMPusher{client: client, logger: logger}, nil
}

func (p *FCMPusher) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*notificationPort.PushResult, error) {
	result := &notificationPort.PushResult{}
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		chunk := tokens[start:end]

		resp, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Notification: &messaging.Notification{Title: title, Body: body},
			Data:         data,
			Tokens:       chunk,
		})
		if err != nil {
			return result, fmt.Errorf("multicast send: %w", err)
		}

		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
		for i, r := range resp.Responses {
			if r.Success {
				continue
			}
			p.logger.Warn("FCM token error", zap.String("token", redactToken(chunk[i])), zap.Error(r.Error))
			if messaging.IsUnregistered(r.Error) {
				result.Unregistered = append(result.Unregistered, chunk[i])
			}
		}
	}
	return result, nil
}

// redactToken keeps only a short prefix of a registration token for logs.
func redactToken(token string) string {
	if len(token) <= loggedTokenPrefix {
		return "..."
	}
	return token[:loggedTokenPrefix] + "..."
}
