package goapdebug

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/goapcore/goap/internal/config"
)

// MetricsSink mirrors per-run summary counters to a Prometheus
// push-gateway and/or an InfluxDB bucket, letting a long batch of
// calculate invocations be observed externally without the core
// planner importing either dependency. Every connection parameter
// comes from config.TraceConfig; nothing here is hardcoded.
type MetricsSink struct {
	pusher *push.Pusher

	expansions *prometheus.GaugeVec
	planCost   *prometheus.GaugeVec
	durationMs *prometheus.GaugeVec

	influx config.TraceConfig
}

// NewMetricsSink builds a sink from cfg. A zero-value field disables
// that half of the sink: an empty PushgatewayURL skips Prometheus, an
// empty InfluxURL skips InfluxDB. Returns nil if both are empty.
func NewMetricsSink(cfg config.TraceConfig) *MetricsSink {
	if cfg.PushgatewayURL == "" && cfg.InfluxURL == "" {
		return nil
	}

	s := &MetricsSink{influx: cfg}

	if cfg.PushgatewayURL != "" {
		s.expansions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goap_plan_expansions",
			Help: "nodes popped from open during the last calculate call",
		}, []string{"run_id"})
		s.planCost = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goap_plan_cost",
			Help: "cost of the plan returned by the last calculate call",
		}, []string{"run_id"})
		s.durationMs = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goap_plan_duration_ms",
			Help: "wall-clock duration of the last calculate call in milliseconds",
		}, []string{"run_id"})

		s.pusher = push.New(cfg.PushgatewayURL, "goapctl").
			Collector(s.expansions).
			Collector(s.planCost).
			Collector(s.durationMs)
	}

	return s
}

// PushSummary records one run's counters and, if configured, pushes
// them to the push gateway and writes an InfluxDB point.
func (s *MetricsSink) PushSummary(runID string, expansions int, planCost float64, durationMs int64) error {
	if s.pusher != nil {
		s.expansions.WithLabelValues(runID).Set(float64(expansions))
		s.planCost.WithLabelValues(runID).Set(planCost)
		s.durationMs.WithLabelValues(runID).Set(float64(durationMs))
		if err := s.pusher.Push(); err != nil {
			return fmt.Errorf("goapdebug: push to gateway: %w", err)
		}
	}

	if s.influx.InfluxURL != "" {
		if err := s.writeInflux(runID, expansions, planCost, durationMs); err != nil {
			return err
		}
	}

	return nil
}

func (s *MetricsSink) writeInflux(runID string, expansions int, planCost float64, durationMs int64) error {
	client := influxdb2.NewClient(s.influx.InfluxURL, s.influx.InfluxToken)
	defer client.Close()

	writeAPI := client.WriteAPIBlocking(s.influx.InfluxOrg, s.influx.InfluxBucket)
	point := write.NewPoint(
		"goap_plan_run",
		map[string]string{"run_id": runID},
		map[string]interface{}{
			"expansions":  expansions,
			"plan_cost":   planCost,
			"duration_ms": durationMs,
		},
		time.Now(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("goapdebug: write influx point: %w", err)
	}
	return nil
}
