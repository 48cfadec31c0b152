package commands

import (
	"context"
	"fmt"
)

// LogoutText confirms /logout.
const LogoutText = "👋 Você foi desconectado.\nEnvie a palavra-chave para entrar novamente."

func (d *Dispatcher) logout(ctx context.Context, req Request) ([]string, error) {
	if err := d.deps.Sessions.Logout(ctx, req.Destination); err != nil {
		return nil, fmt.Errorf("failed to log out: %w", err)
	}
	return []string{LogoutText}, nil
}
