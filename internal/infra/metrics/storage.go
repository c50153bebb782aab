package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(storageOpsTotal) }

var storageOpsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storage_objects_total",
		Help: "Blob store operations by backend and op.",
	},
	[]string{"backend", "op"}, // op: 'put', 'get', 'miss', 'expire'
)

func IncStorage(backend, op string) {
	storageOpsTotal.WithLabelValues(norm(backend), norm(op)).Inc()
}
