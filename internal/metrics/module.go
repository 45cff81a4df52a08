package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module provides service metrics and binds them as dispatcher observer.
var Module = fx.Provide(
	New,
	func(m *Metrics) worker.Observer { return m },
)
