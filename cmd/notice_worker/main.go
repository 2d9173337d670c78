package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/search"
	"github.com/oksasatya/go-noticeboard/pkg/events"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

type noticeIndexer interface {
	IndexNotice(ctx context.Context, ev events.NoticeCreated) error
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notice-worker", cfg.Env, cfg.LogLevel)

	if !cfg.EventsEnabled || !cfg.SearchEnabled {
		log.Println("EVENTS_ENABLED and SEARCH_ENABLED must both be true; notice worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNoticeQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	idx := search.NewNoticeIndex(es, cfg.ESNoticesIndex, logger)
	if err := idx.EnsureIndex(context.Background()); err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQNoticeQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNoticeQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, idx, msg, logger)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQNoticeQueue).Info("notice worker started")
	select {
	case <-stop:
		logger.Info("notice worker stopping")
	case <-done:
		logger.Warn("delivery channel closed")
	}
}

// handle indexes one delivery: ack on success, requeue when indexing fails,
// drop messages that cannot be decoded or carry an unknown type.
func handle(ctx context.Context, idx noticeIndexer, msg amqp.Delivery, logger *logrus.Logger) {
	if msg.Type != "" && msg.Type != events.NoticeCreatedType {
		logger.WithField("type", msg.Type).Warn("unknown message type")
		_ = msg.Nack(false, false)
		return
	}

	var ev events.NoticeCreated
	if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.NoticeID == "" {
		logger.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := idx.IndexNotice(c, ev); err != nil {
		logger.WithError(err).WithField("notice_id", ev.NoticeID).Error("index notice failed")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
