package app

import (
	"context"
	"fmt"

	"github.com/vk/ctxscope/internal/ctxlog"
	"github.com/vk/ctxscope/profile"
)

// Run activates each requested scope in turn and prints every declared
// variable's resolved value while the scope is active. Restoration is
// verified implicitly: each scope starts from the same baseline because the
// previous guard has fully unwound.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scopes, err := a.selectScopes()
	if err != nil {
		return err
	}
	if len(scopes) == 0 {
		a.logger.Warn("No scopes found in profile, nothing to do.")
		return nil
	}

	for _, sc := range scopes {
		a.logger.Info("Activating scope.", "scope", sc.Name, "assignments", len(sc.Guard.Assignments()))
		err := sc.Guard.Run(func() error {
			for _, v := range a.profile.Vars() {
				val, ok := v.Get()
				if !ok {
					fmt.Fprintf(a.outW, "[%s] %s = (unset)\n", sc.Name, v.Name())
					continue
				}
				fmt.Fprintf(a.outW, "[%s] %s = %v\n", sc.Name, v.Name(), val)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scope %q failed: %w", sc.Name, err)
		}
		a.logger.Debug("Scope deactivated, variables restored.", "scope", sc.Name)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// selectScopes resolves the configured scope names against the profile,
// defaulting to every scope in declaration order.
func (a *App) selectScopes() ([]*profile.Scope, error) {
	if len(a.config.Scopes) == 0 {
		return a.profile.Scopes(), nil
	}

	scopes := make([]*profile.Scope, 0, len(a.config.Scopes))
	for _, name := range a.config.Scopes {
		sc, ok := a.profile.Scope(name)
		if !ok {
			return nil, fmt.Errorf("scope %q not found in profile", name)
		}
		scopes = append(scopes, sc)
	}
	return scopes, nil
}
