package passwordchangedalert

import (
	e "authbox/internal/core/domain/errors"
	"authbox/internal/core/domain/logging"
	"authbox/internal/core/domain/user"
	"authbox/internal/rabbitmq"
	"authbox/internal/rabbitmq/schema"
	"context"
	"errors"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes password changed alerts for asynchronous delivery.
// The alerts binary consumes them and sends the actual email.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendPasswordChangedAlert(ctx context.Context, u user.User, changedAt time.Time) error {
	if !u.Email.IsPresent {
		return errors.New("user email is not defined")
	}
	alert := schema.PasswordChangedAlert{
		Email:     string(u.Email.Value),
		ChangedAt: changedAt,
	}
	body, err := alert.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}
