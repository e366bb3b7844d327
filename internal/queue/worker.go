package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/jonathan/resume-aligner/internal/alignment"
)

// Defaults for Config
const (
	DefaultQueue    = "alignment_requests"
	DefaultExchange = "alignment_results"
	DefaultWorkers  = 3
	DefaultPrefetch = 1
)

// Config configures the worker pool
type Config struct {
	URL      string `json:"url" yaml:"url"`
	Queue    string `json:"queue" yaml:"queue"`
	Exchange string `json:"exchange" yaml:"exchange"`
	Workers  int    `json:"workers" yaml:"workers"`
	Prefetch int    `json:"prefetch" yaml:"prefetch"`
}

// WithDefaults fills empty fields
func (c Config) WithDefaults() Config {
	if c.Queue == "" {
		c.Queue = DefaultQueue
	}
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Prefetch <= 0 {
		c.Prefetch = DefaultPrefetch
	}
	return c
}

// publisher is the part of *amqp.Channel used to emit results
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Worker consumes alignment requests and publishes results
type Worker struct {
	cfg    Config
	engine *alignment.Engine
	logger *slog.Logger
}

// NewWorker returns a worker scoring with engine
func NewWorker(cfg Config, engine *alignment.Engine, logger *slog.Logger) *Worker {
	if engine == nil {
		engine = alignment.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{cfg: cfg.WithDefaults(), engine: engine, logger: logger}
}

// Run dials the broker, declares the queue and exchange, and runs
// cfg.Workers consumers until ctx is cancelled or the connection closes.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.URL == "" {
		return errors.New("rabbitmq url is required")
	}
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	setup, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	if err := w.declare(setup); err != nil {
		_ = setup.Close()
		return err
	}
	_ = setup.Close()

	errs := make(chan error, w.cfg.Workers)
	var wg sync.WaitGroup
	for i := range w.cfg.Workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := w.consume(ctx, conn, id); err != nil {
				errs <- err
			}
		}(i + 1)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		_ = conn.Close()
		wg.Wait()
		return nil
	case amqpErr := <-closed:
		wg.Wait()
		if amqpErr != nil {
			return fmt.Errorf("rabbitmq connection closed: %w", amqpErr)
		}
		return nil
	case err := <-errs:
		_ = conn.Close()
		wg.Wait()
		return err
	}
}

func (w *Worker) declare(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(w.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", w.cfg.Queue, err)
	}
	if err := ch.ExchangeDeclare(w.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", w.cfg.Exchange, err)
	}
	return nil
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection, id int) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: error opening channel: %w", id, err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("worker %d: failed to set qos: %w", id, err)
	}
	msgs, err := ch.Consume(w.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("worker %d: error consuming: %w", id, err)
	}

	w.logger.Info("worker started", "worker", id, "queue", w.cfg.Queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, ch, d)
		}
	}
}

// handle scores one delivery. Malformed messages are nacked without
// requeue; publish failures are requeued.
func (w *Worker) handle(ctx context.Context, pub publisher, d amqp.Delivery) {
	req, err := DecodeRequest(d.Body)
	if err != nil {
		w.logger.Warn("dropping malformed message", "error", err, "delivery_tag", d.DeliveryTag)
		_ = d.Nack(false, false)
		return
	}

	result, err := Process(ctx, w.engine, req)
	if err != nil {
		w.logger.Warn("scoring interrupted", "id", req.ID, "error", err)
		_ = d.Nack(false, true)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		w.logger.Error("failed to encode result", "id", req.ID, "error", err)
		_ = d.Nack(false, false)
		return
	}

	err = pub.Publish(w.cfg.Exchange, RoutingKey(req.ID), false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: req.ID,
		Body:          body,
	})
	if err != nil {
		w.logger.Error("failed to publish result", "id", req.ID, "error", err)
		_ = d.Nack(false, true)
		return
	}

	w.logger.Info("alignment published", "id", req.ID, "required", result.Coverage.Required, "preferred", result.Coverage.Preferred)
	_ = d.Ack(false)
}
