package exporter

import (
	"github.com/SyntropyNet/udp-probe/agent/udpclient"
	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotSource provides probe session statistics
type SnapshotSource interface {
	Snapshot() udpclient.Snapshot
}

var (
	labels   = []string{"peer"}
	descSent = prometheus.NewDesc(
		"udpprobe_sent_total",
		"Probes sent to the peer",
		labels, nil,
	)
	descReceived = prometheus.NewDesc(
		"udpprobe_received_total",
		"Probe replies received, duplicates excluded",
		labels, nil,
	)
	descDuplicate = prometheus.NewDesc(
		"udpprobe_duplicate_total",
		"Duplicate probe replies",
		labels, nil,
	)
	descOutOfOrder = prometheus.NewDesc(
		"udpprobe_out_of_order_total",
		"Probe replies older than the highest sequence seen",
		labels, nil,
	)
	descLost = prometheus.NewDesc(
		"udpprobe_lost_total",
		"Probes without reply within reply timeout",
		labels, nil,
	)
	descRttMin = prometheus.NewDesc(
		"udpprobe_rtt_min_microseconds",
		"Lowest probe round trip time",
		labels, nil,
	)
	descRttMax = prometheus.NewDesc(
		"udpprobe_rtt_max_microseconds",
		"Highest probe round trip time",
		labels, nil,
	)
)

type statsCollector struct {
	peer   string
	source SnapshotSource
}

func NewCollector(peer string, source SnapshotSource) prometheus.Collector {
	return &statsCollector{
		peer:   peer,
		source: source,
	}
}

func (sc *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(sc, ch)
}

func (sc *statsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := sc.source.Snapshot()

	counters := []struct {
		desc  *prometheus.Desc
		value uint32
	}{
		{descSent, snap.TotalSent},
		{descReceived, snap.TotalReceived},
		{descDuplicate, snap.TotalDuplicates},
		{descOutOfOrder, snap.TotalOutOfOrder},
		{descLost, snap.TotalLost},
	}
	for _, c := range counters {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(c.value), sc.peer)
	}

	// Extrema are meaningless until the first reply
	if snap.TotalReceived == 0 {
		return
	}
	ch <- prometheus.MustNewConstMetric(descRttMin, prometheus.GaugeValue, float64(snap.MinRoundTrip), sc.peer)
	ch <- prometheus.MustNewConstMetric(descRttMax, prometheus.GaugeValue, float64(snap.MaxRoundTrip), sc.peer)
}
