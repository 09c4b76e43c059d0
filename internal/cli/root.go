package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// errReported marks a failure whose notices were already printed
var errReported = errors.New("command failed")

type app struct {
	load        Loader
	environment string
	workflows   *Workflows
}

// NewRootCommand builds the product-search command tree
func NewRootCommand(load Loader) *cobra.Command {
	a := &app{load: load}

	root := &cobra.Command{
		Use:           "product-search-cli",
		Short:         "Upload product files, refresh the content index and search products",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.load(a.environment)
			if err != nil {
				return err
			}
			a.workflows = w
			cmd.SetContext(logger.Into(cmd.Context(), w.Logger))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.environment, "env", "local", "environment name, selects .env.<env>")

	root.AddCommand(
		a.newUploadCommand(),
		a.newReindexCommand(),
		a.newSearchCommand(),
	)

	return root
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func printNotices(w io.Writer, notices ...entity.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Text)
	}
}
