package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/eventsity/internal/models"
)

// ChangeMessage — тело уведомления об изменении события.
type ChangeMessage struct {
	Action    string          `json:"action"` // created, updated, deleted
	EventID   int             `json:"event_id"`
	Title     string          `json:"title"`
	City      string          `json:"city"`
	EventDate models.WireTime `json:"event_date"`
	ActorUID  string          `json:"actor_uid"`
}

// Notifier публикует уведомления об изменениях событий в exchange "events".
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishChange публикует persistent-сообщение с действием и данными события.
func (n *Notifier) PublishChange(action string, event *models.Event, actorUID string) error {
	const op = "rabbitmq.PublishChange"
	body, err := json.Marshal(ChangeMessage{
		Action:    action,
		EventID:   event.ID,
		Title:     event.Title,
		City:      event.City,
		EventDate: event.EventDate,
		ActorUID:  actorUID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = n.ch.Publish(
		"events",
		"changed",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NopNotifier используется, когда RabbitMQ не сконфигурирован (локальная разработка).
type NopNotifier struct{}

// PublishChange ничего не делает.
func (NopNotifier) PublishChange(_ string, _ *models.Event, _ string) error {
	return nil
}
