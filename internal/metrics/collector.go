package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/moltopo/internal/topology"
)

// Collector records membership activity as Prometheus metrics. It is a
// topology.Observer: pass it to topology.WithObserver.
type Collector struct {
	atoms      *prometheus.GaugeVec
	residues   *prometheus.GaugeVec
	chains     *prometheus.GaugeVec
	commits    *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// NewCollector builds the metric vectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		atoms: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moltopo_atoms",
				Help: "Atoms currently owned by a molecule",
			},
			[]string{"molecule"},
		),
		residues: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moltopo_residues",
				Help: "Residues currently owned by a molecule",
			},
			[]string{"molecule"},
		),
		chains: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moltopo_chains",
				Help: "Chains currently owned by a molecule",
			},
			[]string{"molecule"},
		),
		commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moltopo_commits_total",
				Help: "Total number of committed membership operations",
			},
			[]string{"op"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moltopo_rejections_total",
				Help: "Total number of rejected membership operations",
			},
			[]string{"op", "reason"},
		),
	}

	for _, col := range []prometheus.Collector{c.atoms, c.residues, c.chains, c.commits, c.rejections} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) OnCommit(ev topology.Event) {
	c.commits.WithLabelValues(ev.Op).Inc()
	c.set(ev)
}

func (c *Collector) OnReject(ev topology.Event, err error) {
	c.rejections.WithLabelValues(ev.Op, Reason(err)).Inc()
	c.set(ev)
}

func (c *Collector) set(ev topology.Event) {
	c.atoms.WithLabelValues(ev.Molecule).Set(float64(ev.Atoms))
	c.residues.WithLabelValues(ev.Molecule).Set(float64(ev.Residues))
	c.chains.WithLabelValues(ev.Molecule).Set(float64(ev.Chains))
}

// Reason maps a topology error onto a short label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, topology.ErrOwnership):
		return "ownership"
	case errors.Is(err, topology.ErrStructure):
		return "structure"
	case errors.Is(err, topology.ErrIdentity):
		return "identity"
	case errors.Is(err, topology.ErrIndexRange):
		return "index"
	case errors.Is(err, topology.ErrNotOwned):
		return "not_owned"
	default:
		return "other"
	}
}
