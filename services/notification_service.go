// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/monitoring"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/utils"
	"gorm.io/datatypes"
)

type notificationService struct {
	broker shared.PubSubBroker
}

func NewNotificationService(broker shared.PubSubBroker) *notificationService {
	return &notificationService{broker: broker}
}

// Notify hands the notification to the dispatcher. Failures are logged, never returned.
func (s *notificationService) Notify(ctx context.Context, notificationType models.NotificationType, groupID *string, data map[string]any) {
	payload := map[string]any{
		"type":    string(notificationType),
		"groupId": utils.SafeDereference(groupID),
		"data":    data,
	}
	// the request context ends with the response
	if err := s.broker.Publish(context.WithoutCancel(ctx), shared.NewSimplePubSubMessage(shared.NotificationChannel, payload)); err != nil {
		slog.Error("could not publish notification", "err", err, "type", notificationType)
	}
}

type notificationDispatcher struct {
	broker                    shared.PubSubBroker
	mailer                    shared.Mailer
	subscriptionRepository    shared.GroupSubscriptionRepository
	userRepository            shared.UserRepository
	notificationLogRepository shared.NotificationLogRepository
	frontendURL               string
}

func NewNotificationDispatcher(
	broker shared.PubSubBroker,
	mailer shared.Mailer,
	subscriptionRepository shared.GroupSubscriptionRepository,
	userRepository shared.UserRepository,
	notificationLogRepository shared.NotificationLogRepository,
	cfg config.Config,
) *notificationDispatcher {
	return &notificationDispatcher{
		broker:                    broker,
		mailer:                    mailer,
		subscriptionRepository:    subscriptionRepository,
		userRepository:            userRepository,
		notificationLogRepository: notificationLogRepository,
		frontendURL:               cfg.FrontendURL,
	}
}

// Start consumes the notification channel until the context is canceled.
func (d *notificationDispatcher) Start(ctx context.Context) error {
	messages, err := d.broker.Subscribe(shared.NotificationChannel)
	if err != nil {
		return fmt.Errorf("could not subscribe to notifications: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-messages:
				if !ok {
					return
				}
				d.handle(ctx, payload)
			}
		}
	}()
	return nil
}

func (d *notificationDispatcher) handle(ctx context.Context, payload map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("notification dispatch panicked", r)
		}
	}()

	notificationType, _ := payload["type"].(string)
	groupID, _ := payload["groupId"].(string)
	data, _ := payload["data"].(map[string]any)

	if _, err := d.Dispatch(ctx, models.NotificationType(notificationType), utils.EmptyThenNil(groupID), data); err != nil {
		slog.Error("could not dispatch notification", "err", err, "type", notificationType)
	}
}

func (d *notificationDispatcher) recipients(notificationType models.NotificationType, groupID *string, data map[string]any) ([]string, error) {
	var recipients []string
	if groupID != nil {
		subscribers, err := d.subscriptionRepository.ListActiveSubscriberEmails(*groupID)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, subscribers...)

		if notificationType == models.NotificationTypeRequestNew || notificationType == models.NotificationTypePipelineFailed {
			admins, err := d.userRepository.ListActiveAdmins()
			if err != nil {
				return nil, err
			}
			for _, admin := range admins {
				recipients = append(recipients, admin.Email)
			}
		}
	}

	if notificationType == models.NotificationTypeRequestStatusChange {
		if email := lookup(data, "request", "requester", "email"); email != "" {
			recipients = append(recipients, email)
		}
	}

	recipients = utils.Filter(recipients, func(email string) bool { return email != "" })
	return utils.DeduplicateSlice(recipients, models.NormalizeEmail), nil
}

// Dispatch resolves the recipients, sends the mail and logs the outcome.
// Without recipients nothing is sent or logged.
func (d *notificationDispatcher) Dispatch(ctx context.Context, notificationType models.NotificationType, groupID *string, data map[string]any) (models.NotificationLog, error) {
	start := time.Now()
	defer func() {
		monitoring.NotificationDispatchDuration.Observe(time.Since(start).Seconds())
	}()

	recipients, err := d.recipients(notificationType, groupID, data)
	if err != nil {
		return models.NotificationLog{}, fmt.Errorf("could not resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		slog.Info("no recipients for notification", "type", notificationType)
		return models.NotificationLog{}, nil
	}

	subject, body, err := renderNotification(notificationType, data, d.frontendURL)
	if err != nil {
		return models.NotificationLog{}, err
	}

	log := models.NotificationLog{
		Type:       notificationType,
		Recipients: datatypes.JSONSlice[string](recipients),
		Subject:    subject,
		Body:       body,
		Metadata:   data,
	}

	if !d.mailer.Configured() {
		slog.Info("mail transport not configured, skipping notification", "type", notificationType, "recipients", len(recipients))
		log.Status = models.NotificationStatusSkipped
	} else if err := d.mailer.Send(ctx, recipients, subject, body); err != nil {
		slog.Warn("could not send notification", "err", err, "type", notificationType)
		log.Status = models.NotificationStatusFailed
		log.Error = utils.Ptr(err.Error())
	} else {
		log.Status = models.NotificationStatusSent
		slog.Info("notification sent", "type", notificationType, "recipients", len(recipients))
	}
	monitoring.NotificationsDispatched.WithLabelValues(string(notificationType), string(log.Status)).Inc()

	if err := d.notificationLogRepository.Create(nil, &log); err != nil {
		return log, fmt.Errorf("could not store notification log: %w", err)
	}
	return log, nil
}
