// Package main implementa el cliente del catálogo de adopción: el servidor
// de vistas y comandos de consola sobre el mismo record store.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// envFile es el .env opcional a cargar antes de leer la config
	envFile string
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catálogo de mascotas en adopción",
	Long: `catalog consume el API REST de mascotas, mantiene favoritos y tema en un
almacenamiento local y expone las vistas del catálogo.

La configuración se lee del entorno (CATALOG_*, LOG_*), opcionalmente desde un .env.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "archivo .env opcional")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(favoriteCmd)
}
