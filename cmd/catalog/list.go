package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/favorites"
	"pet-adoption-catalog/internal/listing"
)

var (
	listType      string
	listGender    string
	listSearch    string
	listPage      int
	listFavorites bool
	listJSON      bool
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", listing.All, "Perro | Gato | Todos")
	listCmd.Flags().StringVar(&listGender, "gender", listing.All, "Macho | Hembra | Todos")
	listCmd.Flags().StringVar(&listSearch, "search", "", "texto a buscar en el nombre")
	listCmd.Flags().IntVar(&listPage, "page", 1, "página (se ajusta al rango)")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "solo favoritos")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "salida JSON")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista el catálogo filtrado y paginado",
	Long: `Trae la colección completa y aplica el mismo pipeline que el listado de gestión.

Examples:
  catalog list --type Perro --search ro
  catalog list --favorites --page 2`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := a.store.Load(ctx); err != nil {
		return fmt.Errorf("%s (%w)", catalog.UserMessage(err), err)
	}

	favs := favorites.New(ctx, a.local, a.log)
	q := listing.NewQuery(a.cfg.PageSize).
		WithSpecies(listType).
		WithGender(listGender).
		WithSearch(listSearch)
	if listFavorites {
		q = q.WithFavorites(true, favs.Set())
	}
	q.Page = listPage

	res := listing.Run(a.store.Pets(), q)
	out := cmd.OutOrStdout()

	if listJSON {
		recs := make([]pets.Record, 0, len(res.Page.Items))
		for _, p := range res.Page.Items {
			recs = append(recs, pets.RecordFrom(p))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"items":      recs,
			"page":       res.Page.Number,
			"totalPages": res.Page.Total,
			"count":      res.Page.Count,
		})
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNOMBRE\tTIPO\tGÉNERO\tEDAD\tCLASIFICACIÓN\tFAV")
	for _, p := range res.Page.Items {
		fav := ""
		if favs.IsFavorite(p.ID) {
			fav = "★"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%s\t%s\n",
			p.ID, p.Name, p.Species, p.Gender, p.Age, p.EffectiveClassification(), fav)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nPágina %d de %d (%d resultados)\n", res.Page.Number, res.Page.Total, res.Page.Count)
	return nil
}
