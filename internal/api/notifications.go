package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pennywise/internal/models"
)

// NotificationsService manages user notifications.
type NotificationsService struct {
	c *Client
}

func (s *NotificationsService) List(ctx context.Context, limit int) ([]models.Notification, error) {
	path := "/api/notifications"
	if limit > 0 {
		path += query(map[string]string{"limit": strconv.Itoa(limit)})
	}
	var notifications []models.Notification
	if err := s.c.do(ctx, http.MethodGet, path, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationsService) Unread(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.c.do(ctx, http.MethodGet, "/api/notifications/unread", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationsService) Summary(ctx context.Context) (*models.NotificationSummary, error) {
	var summary models.NotificationSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/notifications/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, nil)
}

func (s *NotificationsService) MarkAllRead(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}

func (s *NotificationsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/notifications/"+id, nil, nil)
}

// Poll fetches unread notifications on the given interval and hands each
// batch to fn. It blocks until the context is cancelled; fetch errors are
// passed to fn with a nil batch and polling continues. Cancellation is not
// an error: a fetch cut short by it returns without invoking fn.
func (s *NotificationsService) Poll(ctx context.Context, interval time.Duration, fn func([]models.Notification, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notifications, err := s.Unread(ctx)
			if ctx.Err() != nil {
				return
			}
			fn(notifications, err)
		}
	}
}
