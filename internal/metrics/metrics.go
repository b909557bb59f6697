package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry：独立注册表，批处理进程结束时整体导出为 textfile
var Registry = prometheus.NewRegistry()

var (
	LinesReadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "region_lines_read_total",
		Help: "Total number of input lines read",
	})
	LinesRetainedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "region_lines_retained_total",
		Help: "Total number of lines retained as regions",
	})
	LinesInvalidTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "region_lines_invalid_total",
		Help: "Total number of structurally invalid lines",
	})
	RecordsProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "region_records_processed_total",
		Help: "Total number of composed records",
	})
	SinkRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "region_sink_records_total",
		Help: "Records written per sink",
	}, []string{"sink"})
	StageDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "region_stage_duration_ms",
		Help:    "Pipeline stage duration in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	}, []string{"stage"})
)

func init() {
	Registry.MustRegister(LinesReadTotal)
	Registry.MustRegister(LinesRetainedTotal)
	Registry.MustRegister(LinesInvalidTotal)
	Registry.MustRegister(RecordsProcessedTotal)
	Registry.MustRegister(SinkRecordsTotal)
	Registry.MustRegister(StageDurationMs)
}

// ObserveStage：记录阶段耗时
func ObserveStage(stage string, start time.Time) {
	StageDurationMs.WithLabelValues(stage).Observe(float64(time.Since(start).Milliseconds()))
}

// 文档注释：把注册表写为 Prometheus 文本格式文件
// 背景：供 node_exporter textfile collector 采集；写入先落临时文件再 rename。
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
