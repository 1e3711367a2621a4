package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pet-adoption-catalog/internal/catalog"
	"pet-adoption-catalog/internal/favorites"
)

var favoriteClear bool

func init() {
	favoriteCmd.Flags().BoolVar(&favoriteClear, "clear", false, "borra todos los favoritos")
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite [id]",
	Short: "Marca o desmarca un favorito",
	Long: `Alterna el id en el set de favoritos guardado localmente. Sin argumentos
muestra el set actual.

Examples:
  catalog favorite 12
  catalog favorite --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFavorite,
}

func runFavorite(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	favs := favorites.New(ctx, a.local, a.log)
	out := cmd.OutOrStdout()

	switch {
	case favoriteClear:
		if err := favs.ClearAll(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "favoritos borrados")
	case len(args) == 1:
		on, err := favs.Toggle(ctx, args[0])
		if err != nil {
			return err
		}
		state := "quitado de"
		if on {
			state = "agregado a"
		}
		_, _ = fmt.Fprintf(out, "%s %s favoritos\n", strings.TrimSpace(args[0]), state)
	default:
		// Solo se listan favoritos que siguen en el catálogo.
		if err := a.store.Load(ctx); err != nil {
			return fmt.Errorf("%s (%w)", catalog.UserMessage(err), err)
		}
		for _, p := range favs.Resolve(a.store.Pets()) {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Name)
		}
	}
	return nil
}
