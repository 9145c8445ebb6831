package cli

import (
	"context"
	"fmt"
)

// Theme flips the light/dark preference and reports the new mode.
func (a *App) Theme(ctx context.Context) error {
	if a.theme.Toggle(ctx) {
		fmt.Fprintln(a.out, "Tema escuro ativado")
	} else {
		fmt.Fprintln(a.out, "Tema claro ativado")
	}
	return nil
}
