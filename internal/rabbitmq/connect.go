// Package rabbitmq содержит подключение к RabbitMQ и объявление
// обменника и очереди событий о покупках.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// PurchasesExchange — обменник, в который публикуются события о покупках.
const PurchasesExchange = "purchases"

// PurchasesRoutingKey — ключ маршрутизации событий успешного оформления заказа.
const PurchasesRoutingKey = "completed"

// PurchasesQueue — очередь для потребителей событий о покупках
// (аналитика, уведомления).
const PurchasesQueue = "purchases.completed"

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет обменник purchases
// с привязанной очередью событий.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		PurchasesExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		PurchasesQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, PurchasesQueue, err)
	}

	err = ch.QueueBind(
		PurchasesQueue,
		PurchasesRoutingKey,
		PurchasesExchange,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, PurchasesQueue, err)
	}

	return ch, nil
}
