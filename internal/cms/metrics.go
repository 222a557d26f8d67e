package cms

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stagefront_cms_requests_total",
		Help: "Number of requests sent to the CMS backend by resource and outcome.",
	}, []string{"resource", "method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stagefront_cms_request_seconds",
		Help:    "Latency of CMS backend requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})
)

func init() {
	prometheus.MustRegister(requestTotal, requestDuration)
}

func observeRequest(path, method string, resp *http.Response, err error, elapsed time.Duration) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	resource := resourceLabel(path)
	requestTotal.WithLabelValues(resource, method, status).Inc()
	requestDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

// resourceLabel 把具体请求路径折叠成低基数的资源名，避免 ID 进入标签。
func resourceLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "unknown"
	}
	if parts[0] == "content" && len(parts) > 1 {
		return "content/" + parts[1]
	}
	return parts[0]
}
