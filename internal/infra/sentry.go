// README: Sentry client initialisation for error and panic reporting.
package infra

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global Sentry hub. The returned flush blocks until
// buffered events are sent or two seconds pass.
func InitSentry(dsn, environment string) (flush func(), err error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("sentry.Init: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}
