package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"teamflow/microservices/projects-service/logging"

	"github.com/sony/gobreaker"
)

// NotificationClient posts user notifications to the notifications service.
// Calls go through a circuit breaker so a dead notifications service cannot
// stall project operations.
type NotificationClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationClient(baseURL string) *NotificationClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &NotificationClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: breaker,
	}
}

// NotifyUser sends a notification message for the given username.
func (nc *NotificationClient) NotifyUser(ctx context.Context, username, message string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"message":  message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %v", err)
	}

	_, err = nc.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, nc.baseURL+"/api/notifications", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := nc.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("notifications service returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}
