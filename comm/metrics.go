package comm

import (
	"github.com/yku12cn/cpisync/metrics"
)

const (
	namespace      = "comm"
	transportLabel = "transport"
)

var (
	sentBytes = metrics.NewCounter(
		"sent_bytes",
		namespace,
		"total bytes sent over reconciliation transports",
		[]string{transportLabel},
	)
	receivedBytes = metrics.NewCounter(
		"received_bytes",
		namespace,
		"total bytes received over reconciliation transports",
		[]string{transportLabel},
	)
	connections = metrics.NewCounter(
		"connections",
		namespace,
		"connections established",
		[]string{transportLabel, "role"},
	)
)
