package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/aherrada/gridclean/core/clean"
	coremetrics "github.com/aherrada/gridclean/core/metrics"
	"github.com/aherrada/gridclean/core/model"
	"github.com/aherrada/gridclean/infra/logger"
)

// InfluxSink writes cleaning runs and cleaned series to an InfluxDB instance
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCleaningResult writes the run summary as a single point.
func (s *InfluxSink) RecordCleaningResult(res coremetrics.CleaningResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("cleaning_run").
		AddTag("run_id", res.RunID).
		AddField("rows", res.Rows).
		AddField("columns_dropped", res.ColumnsDropped).
		AddField("anomalies_corrected", res.AnomaliesCorrected).
		AddField("values_imputed", res.ValuesImputed).
		AddField("boundary_gaps", res.BoundaryGaps).
		AddField("duration_s", res.Duration.Seconds()).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordGapFills writes one annotation point per interpolated gap.
func (s *InfluxSink) RecordGapFills(fills []clean.GapFill) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, f := range fills {
		p := write.NewPointWithMeasurement("gap_fill").
			AddTag("column", f.Column).
			AddField("length_hours", f.Length).
			SetTime(f.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// WriteDataset writes every retained column of the cleaned dataset as one
// point per row, tagged with whether the value was imputed.
func (s *InfluxSink) WriteDataset(ctx context.Context, ds *model.Dataset) error {
	for _, col := range ds.Columns() {
		for i, v := range col.Values {
			if model.IsMissing(v) {
				continue
			}
			p := write.NewPointWithMeasurement("generation").
				AddTag("column", col.Name).
				AddTag("imputed", boolTag(col.Imputed[i])).
				AddField("value_mw", v).
				SetTime(ds.Times[i])
			if err := s.writeAPI.WritePoint(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
