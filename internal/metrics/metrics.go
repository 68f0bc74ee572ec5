package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSucceeded  = "succeeded"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
	OutcomeRejected   = "rejected"
)

var (
	ListingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkscape_listing_requests_total",
		Help: "Feed and search requests by kind and how they settled.",
	}, []string{"kind", "outcome"})

	DetailFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkscape_detail_fetches_total",
		Help: "Remote post detail fetches by outcome.",
	}, []string{"outcome"})

	LocalPosts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkscape_local_posts_total",
		Help: "Locally authored posts injected into the list.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
