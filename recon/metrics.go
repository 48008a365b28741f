package recon

import (
	"github.com/yku12cn/cpisync/metrics"
)

const namespace = "recon"

var (
	sessions = metrics.NewCounter(
		"sessions",
		namespace,
		"reconciliation sessions by strategy, role and result",
		[]string{"strategy", "role", "result"},
	)
	negotiationFailures = metrics.NewCounter(
		"negotiation_failures",
		namespace,
		"sessions aborted during parameter negotiation",
		[]string{"strategy", "role"},
	)
)
