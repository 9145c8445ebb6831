package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// Root restores persisted state, loads the directory, and runs the REPL until
// the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Bem-vindo ao AteliêPerto (type 'help' for commands)")

	a.session.Restore(ctx)
	a.theme.Init(ctx)

	if err := a.dir.Load(ctx); err != nil {
		a.log.Warn(ctx, "initial directory load failed", "err", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
