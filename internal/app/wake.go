package app

import (
	"context"

	"github.com/specialistvlad/sweepkit/internal/wake"
)

// Wake computes the wake time and suspends the machine until then.
func (a *App) Wake(ctx context.Context, cfg *WakeConfig, cmd wake.Commander) (*wake.Outcome, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Wake method started.", "tokens", cfg.Tokens, "mode", cfg.Mode)

	scheduler := wake.NewScheduler(wake.Options{
		Mode:    cfg.Mode,
		Timeout: cfg.Timeout,
		DryRun:  cfg.DryRun,
		RTCWake: cfg.RTCWake,
		Zenity:  cfg.Zenity,
	}, cmd, a.outW)
	return scheduler.Run(ctx, cfg.Tokens)
}
