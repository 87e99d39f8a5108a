package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted, by id or by name",
	})

	// RepositoryOperations counts product repository calls by operation and outcome.
	RepositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_repository_operations_total",
		Help: "The total number of product repository operations",
	}, []string{"operation", "outcome"})

	// NotificationsPublished counts product change notifications by action and result.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_notifications_published_total",
		Help: "The total number of product change notifications sent",
	}, []string{"action", "result"})
)

// RecordRepositoryOperation increments the repository operation counter.
func RecordRepositoryOperation(operation, outcome string) {
	RepositoryOperations.WithLabelValues(operation, outcome).Inc()
}
