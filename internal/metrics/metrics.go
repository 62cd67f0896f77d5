package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pim_mutations_total",
		Help: "Total number of committed entity mutations.",
	},
		[]string{"entity", "action"},
	)

	AuditWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pim_audit_writes_total",
		Help: "Audit trail writes by record kind and result.",
	},
		[]string{"kind", "result"},
	)

	AuditQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pim_audit_queue_depth",
		Help: "Entries waiting in the audit recorder queue.",
	})

	AuditInlineTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pim_audit_inline_total",
		Help: "Entries written on the caller goroutine because the queue was full or closed.",
	})

	AuditPublishDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pim_audit_publish_dropped_total",
		Help: "Audit events not published because the publisher was busy or closed.",
	})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pim_import_rows_total",
		Help: "Spreadsheet import rows by outcome.",
	},
		[]string{"outcome"},
	)

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pim_notifications_total",
		Help: "Change notification mails by result.",
	},
		[]string{"result"},
	)
)
