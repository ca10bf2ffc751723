package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/observability"
)

// logHooks reports pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnParse(_ context.Context, people, groups, locked int) {
	h.logger.Debug("hook: parse", "people", people, "groups", groups, "locked", locked)
}

func (h logHooks) OnSolveStart(_ context.Context, mode string, seats, groups int) {
	h.logger.Debug("hook: solve start", "mode", mode, "seats", seats, "groups", groups)
}

func (h logHooks) OnSolveComplete(_ context.Context, mode string, seats int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("hook: solve failed", "mode", mode, "seats", seats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("hook: solve done", "mode", mode, "seats", seats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("hook: cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("hook: cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("hook: cache set", "type", keyType, "bytes", size)
}

// registerLogHooks routes observability events to l when it logs at debug
// level.
func registerLogHooks(l *log.Logger) {
	if l.GetLevel() > log.DebugLevel {
		return
	}
	h := logHooks{logger: l}
	observability.SetAssignHooks(h)
	observability.SetCacheHooks(h)
}
