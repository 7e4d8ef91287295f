package dataio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_import_rows_total",
		Help: "Filas importadas por entidad y resultado (imported, rejected).",
	}, []string{"entity", "result"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_exports_total",
		Help: "Exportaciones generadas por conjunto y formato.",
	}, []string{"dataset", "format"})
)
