package query

import (
	"github.com/rs/zerolog"

	"github.com/hadi77ir/go-memquery/internal/logging"
)

// SetLogger installs the logger used for pipeline tracing. Stage progress is
// logged at trace level and configuration errors at debug level. The default
// logger discards everything.
func SetLogger(logger zerolog.Logger) {
	logging.SetGlobalLogger(logger)
}
