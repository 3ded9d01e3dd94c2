// Package metrics uygulamanın prometheus sayaçlarını tanımlar.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations uzak depo yazma/silme çağrıları (collection, op, result).
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "store_operations_total",
		Help:      "Remote store writes and deletes by collection, operation and result.",
	}, []string{"collection", "op", "result"})

	// DispatchFailures iyimser güncellemesi yapılmış ama uzak yazımı başarısız olan eylemler.
	DispatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "dispatch_failures_total",
		Help:      "Application actions whose remote write failed after the local update.",
	}, []string{"action"})

	RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "rsvp_submissions_total",
		Help:      "RSVP submissions and self-service responses by status.",
	}, []string{"source", "status"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "login_attempts_total",
		Help:      "Operator login attempts by result.",
	}, []string{"result"})

	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "gallery_uploaded_bytes_total",
		Help:      "Bytes written to the gallery blob store.",
	})

	// StaleSnapshots durum kabının yerel yazımdan eski olduğu için attığı akış görüntüleri.
	StaleSnapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "stale_snapshots_total",
		Help:      "Feed snapshots dropped because a newer local write had already been stored.",
	}, []string{"collection"})

	FeedSubscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "wedding",
		Name:      "feed_subscribers",
		Help:      "Active push subscribers per collection.",
	}, []string{"collection"})
)

// Result hata durumunu etiket değerine çevirir.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
