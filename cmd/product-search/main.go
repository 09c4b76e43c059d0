package main

import (
	"log"
	"os"

	"github.com/futig/product-search/internal/builder"
	"github.com/spf13/cobra"
)

func main() {
	var environment string

	cmd := &cobra.Command{
		Use:          "product-search",
		Short:        "Serve the product search console and JSON API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := builder.Build(environment)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}
	cmd.Flags().StringVar(&environment, "env", "local", "environment name, selects .env.<env>")

	if err := cmd.Execute(); err != nil {
		log.Println("Application error:", err)
		os.Exit(1)
	}
}
