package perf

import (
	"expvar"
	"log/slog"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	MessagesSent      = metric.NewCounter("10s1s")
	MessagesReceived  = metric.NewCounter("10s1s")
	DuplicatesDropped = metric.NewCounter("10s1s")
	Relaxations       = metric.NewCounter("10s1s")
	Recomputations    = metric.NewCounter("10s1s")
	RoundLatency      = metric.NewHistogram("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("routesim:MessagesSent", MessagesSent)
	expvar.Publish("routesim:MessagesReceived", MessagesReceived)
	expvar.Publish("routesim:DuplicatesDropped", DuplicatesDropped)
	expvar.Publish("routesim:Relaxations", Relaxations)
	expvar.Publish("routesim:Recomputations", Recomputations)
	expvar.Publish("routesim:RoundLatency (µs)", RoundLatency)
}

// Serve exposes /debug/metrics and /debug/vars on addr in the background
func Serve(addr string, log *slog.Logger) {
	go func() {
		log.Info("serving debug metrics", "addr", addr)
		err := http.ListenAndServe(addr, nil)
		if err != nil {
			log.Error("debug server stopped", "error", err)
		}
	}()
}
