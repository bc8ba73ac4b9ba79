package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// notificationFeedLimit caps the notification feed. The client never pages
// past this.
const notificationFeedLimit = 20

const unreadCountTTL = 5 * time.Minute

// NotificationService handles the notification feed and the deadline
// reminder sweep. Unread counts are served through a cache-aside layer; the
// cache is best-effort and its failures are logged, never surfaced.
type NotificationService struct {
	notificationRepo ports.NotificationRepository
	taskRepo         ports.TaskRepository
	cache            ports.CacheRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service. cache may be
// nil, in which case unread counts always hit the database.
func NewNotificationService(notificationRepo ports.NotificationRepository, taskRepo ports.TaskRepository, cache ports.CacheRepository, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		cache:            cache,
		logger:           logger,
	}
}

// GetNotifications returns the user's notifications, newest first, capped
// at 20.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error) {
	notifications, err := s.notificationRepo.GetByUser(ctx, userID, notificationFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

// UnreadCount returns the user's unread notification count, cache-aside.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := unreadCountKey(userID)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warnw("Unread count cache read failed", "error", err, "user_id", userID)
		} else if ok {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountTTL); err != nil {
			s.logger.Warnw("Unread count cache write failed", "error", err, "user_id", userID)
		}
	}

	return count, nil
}

// MarkRead marks one of the user's own notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.invalidateUnreadCount(ctx, userID)

	return nil
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	s.invalidateUnreadCount(ctx, userID)

	return nil
}

// SendDeadlineReminders notifies the assignee of every open, assigned task
// whose deadline falls within the window. It returns the number of
// reminders written. Per-task failures are logged and the sweep continues.
func (s *NotificationService) SendDeadlineReminders(ctx context.Context, within time.Duration) (int, error) {
	tasks, err := s.taskRepo.GetNearDeadline(ctx, within)
	if err != nil {
		return 0, fmt.Errorf("failed to get tasks near deadline: %w", err)
	}

	sent := 0
	for _, task := range tasks {
		if task.AssignedTo == nil {
			continue
		}

		notification := &entities.Notification{
			ID:        uuid.New(),
			UserID:    *task.AssignedTo,
			Type:      entities.NotificationDeadlineReminder,
			RelatedID: task.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Errorw("Deadline reminder failed",
				"error", err, "task_id", task.ID, "user_id", *task.AssignedTo)
			continue
		}

		s.invalidateUnreadCount(ctx, *task.AssignedTo)
		sent++
	}

	s.logger.Info("Deadline reminder sweep finished", "candidates", len(tasks), "sent", sent)

	return sent, nil
}

// InvalidateUnreadCount drops the cached unread count for a user. Called by
// notification producers after a write.
func (s *NotificationService) InvalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	s.invalidateUnreadCount(ctx, userID)
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, unreadCountKey(userID)); err != nil {
		s.logger.Warnw("Unread count cache invalidation failed", "error", err, "user_id", userID)
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}
