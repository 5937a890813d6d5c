package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON events.
type Producer struct {
	writer  MessageWriter
	comp    string
	metrics *producerMetrics
}

// NewProducer creates a new Kafka producer. The writer connects lazily on first publish.
func NewProducer(opts ...ProducerOption) (*Producer, error) {
	cfg := &ProducerConfig{
		RequiredAcks: -1,
		Compression:  "gzip",
		MaxAttempts:  3,
		WriteTimeout: 5 * time.Second,
		BatchTimeout: 10 * time.Millisecond,
		HashByKey:    true,
		Registerer:   prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}

	bal := kafka.Balancer(&kafka.LeastBytes{})
	if cfg.HashByKey {
		bal = &kafka.Hash{}
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     bal,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:  parseCompression(cfg.Compression),
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		BatchTimeout: cfg.BatchTimeout,
	}

	return NewProducerWithWriter(writer, cfg.Compression, cfg.Registerer), nil
}

// NewProducerWithWriter wraps an existing writer.
func NewProducerWithWriter(w MessageWriter, compression string, reg prometheus.Registerer) *Producer {
	return &Producer{writer: w, comp: compression, metrics: metricsFor(reg)}
}

// Publish sends value, JSON-encoded unless it is already bytes or a string.
func (p *Producer) Publish(ctx context.Context, topic string, key []byte, value interface{}) error {
	start := time.Now()
	v, err := encode(value)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: v,
		Time:  start,
	}

	err = p.writer.WriteMessages(ctx, msg)
	p.metrics.observe(topic, p.comp, int64(len(v)), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes the producer.
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func encode(value interface{}) ([]byte, error) {
	switch val := value.(type) {
	case []byte:
		return val, nil
	case string:
		return []byte(val), nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		return b, nil
	}
}

func parseCompression(s string) kafka.Compression {
	switch s {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Gzip
	}
}

type producerMetrics struct {
	msgsTotal   *prometheus.CounterVec
	errsTotal   *prometheus.CounterVec
	bytesTotal  *prometheus.CounterVec
	latencyHist *prometheus.HistogramVec
}

var (
	metricsMu  sync.Mutex
	metricsReg = map[prometheus.Registerer]*producerMetrics{}
)

// metricsFor registers the producer collectors once per registry.
func metricsFor(reg prometheus.Registerer) *producerMetrics {
	if reg == nil {
		return nil
	}
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if m, ok := metricsReg[reg]; ok {
		return m
	}
	f := promauto.With(reg)
	m := &producerMetrics{
		msgsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_kafka_producer_messages_total",
				Help: "Total messages published to Kafka",
			},
			[]string{"topic", "compression", "result"},
		),
		errsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_kafka_producer_errors_total",
				Help: "Total producer errors",
			},
			[]string{"topic"},
		),
		bytesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_kafka_producer_bytes_total",
				Help: "Total payload bytes published",
			},
			[]string{"topic", "compression"},
		),
		latencyHist: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vaderboot_kafka_producer_publish_seconds",
				Help:    "Publish latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"topic"},
		),
	}
	metricsReg[reg] = m
	return m
}

func (m *producerMetrics) observe(topic, comp string, bytes int64, dur time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		m.errsTotal.WithLabelValues(topic).Inc()
	}
	m.msgsTotal.WithLabelValues(topic, comp, result).Inc()
	m.bytesTotal.WithLabelValues(topic, comp).Add(float64(bytes))
	m.latencyHist.WithLabelValues(topic).Observe(dur.Seconds())
}
