package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of events published to Kafka",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_operations_total",
			Help: "Response cache operations",
		},
		[]string{"op"}, // hit|miss|expired|set|bypass|cleared
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "response_cache_size",
			Help: "Number of responses currently in cache",
		},
	)
)

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders persisted",
		},
	)
	StockRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_rejections_total",
			Help: "Orders rejected during stock validation",
		},
		[]string{"reason"}, // not_found|insufficient
	)
	StockDecrementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_decrement_failures_total",
			Help: "Best-effort stock decrements that failed after an order was persisted",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация коллекторов в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
			OrdersCreated, StockRejections, StockDecrementFailures,
		)
	})
}
