package consumers

import (
	"authbox/internal/app/deps"
	dl "authbox/internal/core/domain/logging"
	passwordchangedalert "authbox/internal/rabbitmq/consumers/password_changed_alert"
	"context"
)

func initPasswordChangedAlertConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqAlertQueue
	passwordChangedAlertConsumer := passwordchangedalert.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = passwordChangedAlertConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownPasswordChangedAlertConsumer := initPasswordChangedAlertConsumer(deps)

	return func() {
		shutdownPasswordChangedAlertConsumer()
	}
}
