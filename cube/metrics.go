package cube

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of cube computations.
type Metrics struct {
	Computations      prometheus.Counter
	TreesMaterialized prometheus.Counter
	NodesCreated      prometheus.Counter
	NodesMerged       prometheus.Counter
	CellsEmitted      prometheus.Counter
	PrunedBySupport   prometheus.Counter
	ArenaBytes        prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Computations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_computations_total",
			Help: "Total cube computations run to completion",
		}),
		TreesMaterialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_trees_materialized_total",
			Help: "Total child star-trees built during traversal",
		}),
		NodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_nodes_created_total",
			Help: "Total nodes allocated in child star-trees",
		}),
		NodesMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_nodes_merged_total",
			Help: "Total nodes folded into an existing child-tree node",
		}),
		CellsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_cells_emitted_total",
			Help: "Total iceberg cells emitted",
		}),
		PrunedBySupport: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starcube_pruned_by_support_total",
			Help: "Total child trees not built because the node was below minimum support",
		}),
		ArenaBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "starcube_arena_bytes",
			Help: "Node arena bytes held by the last computation",
		}),
	}

	reg.MustRegister(
		m.Computations,
		m.TreesMaterialized,
		m.NodesCreated,
		m.NodesMerged,
		m.CellsEmitted,
		m.PrunedBySupport,
		m.ArenaBytes,
	)
	return m
}

func (m *Metrics) observe(s Stats) {
	m.Computations.Inc()
	m.TreesMaterialized.Add(float64(s.TreesMaterialized))
	m.NodesCreated.Add(float64(s.NodesCreated))
	m.NodesMerged.Add(float64(s.NodesMerged))
	m.CellsEmitted.Add(float64(s.CellsEmitted))
	m.PrunedBySupport.Add(float64(s.PrunedBySupport))
	m.ArenaBytes.Set(float64(s.ArenaBytes))
}
