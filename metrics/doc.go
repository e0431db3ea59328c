/*
Package metrics exports the state of element stores to Prometheus.

A Collector owns a set of counters and gauges, registered with a
prometheus.Registerer of the client's choice. Stores are attached to a
collector and report every applied batch through their event subscription:

    c := metrics.NewCollector(prometheus.DefaultRegisterer)
    detach := c.Attach(s)
    defer detach()

Fatal batch errors are not delivered as events. Clients hand them to
ObserveError, which classifies them by cause.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'elemtree.metrics'.
func tracer() tracing.Trace {
	return tracing.Select("elemtree.metrics")
}
