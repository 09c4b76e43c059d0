package main

import (
	"context"
	"os"

	"github.com/futig/product-search/internal/builder"
	"github.com/futig/product-search/internal/cli"
)

func main() {
	root := cli.NewRootCommand(func(environment string) (*cli.Workflows, error) {
		rt, err := builder.BuildRuntime(environment)
		if err != nil {
			return nil, err
		}
		return &cli.Workflows{
			Upload:    rt.Usecases.Upload,
			Index:     rt.Usecases.Index,
			Search:    rt.Usecases.Search,
			Formatter: rt.Usecases.Formatter,
			Logger:    rt.Logger,
		}, nil
	})

	os.Exit(cli.Execute(context.Background(), root, os.Stderr))
}
