package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// List prints the current directory view, filtered by the active query.
func (a *App) List(ctx context.Context) error {
	list := a.dir.View()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Nenhuma costureira encontrada")
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Rating, p.Distance, strings.Join(p.Services, ", "))
	}
	return nil
}

// Search sets the free-text query and prints the filtered view. An empty
// query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	a.dir.SetQuery(query)
	return a.List(ctx)
}

// Featured prints the featured subset.
func (a *App) Featured(ctx context.Context) error {
	for _, p := range a.dir.Featured() {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", p.ID, p.Name, p.Rating)
	}
	return nil
}

// Show fetches and prints the full profile for one provider.
func (a *App) Show(ctx context.Context, id string) error {
	providerID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return err
	}

	p, err := a.profiles.Profile(ctx, providerID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "%s (%s, %d avaliações)\n", p.Name, p.Rating, p.ReviewCount)
	fmt.Fprintf(a.out, "%s\n", p.Address)
	if p.Bio != "" {
		fmt.Fprintf(a.out, "%s\n", p.Bio)
	}
	for _, s := range p.Offers {
		fmt.Fprintf(a.out, "  %s\t%s\n", s.Name, s.PriceRange)
	}
	for _, r := range p.Reviews {
		fmt.Fprintf(a.out, "  [%d/5] %s: %s\n", r.Rating, r.CustomerName, r.Comment)
	}
	return nil
}

// Refresh clears the query and re-loads the directory from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.dir.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	return a.List(ctx)
}
