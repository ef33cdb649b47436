package handlers

import (
	"bytes"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var (
	trackedRequests    *prometheus.CounterVec
	trackedTokens      *prometheus.CounterVec
	personaGenerations *prometheus.CounterVec
)

func InitPrometheusMetrics() {
	trackedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingoadmin",
			Name:      "tracked_requests_total",
			Help:      "Total platform requests reported through the usage tracking endpoint.",
		},
		[]string{"provider"},
	)
	trackedTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingoadmin",
			Name:      "tracked_tokens_total",
			Help:      "Total tokens reported through the usage tracking endpoint.",
		},
		[]string{"provider"},
	)
	personaGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingoadmin",
			Name:      "persona_generations_total",
			Help:      "AI-assisted persona generation attempts by outcome.",
		},
		[]string{"outcome"},
	)
	prometheus.MustRegister(trackedRequests, trackedTokens, personaGenerations)
}

func observeTrackedUsage(provider string, requests, tokens int64) {
	if trackedRequests == nil {
		return
	}
	if requests > 0 {
		trackedRequests.WithLabelValues(provider).Add(float64(requests))
	}
	if tokens > 0 {
		trackedTokens.WithLabelValues(provider).Add(float64(tokens))
	}
}

func observePersonaGeneration(outcome string) {
	if personaGenerations == nil {
		return
	}
	personaGenerations.WithLabelValues(outcome).Inc()
}

// MetricsExport serves the service's own metric families in Prometheus
// text format. Only the lingoadmin namespace is exported; Go runtime
// and process collectors stay internal.
func MetricsExport() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		families, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to gather metrics")
			return
		}

		filtered := make([]*dto.MetricFamily, 0, len(families))
		for _, mf := range families {
			if strings.HasPrefix(mf.GetName(), "lingoadmin_") {
				filtered = append(filtered, mf)
			}
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range filtered {
			if err := encoder.Encode(mf); err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}
