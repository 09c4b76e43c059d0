package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/usecase/search"
	"github.com/spf13/cobra"
)

func (a *app) newSearchCommand() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithAction(cmd.Context(), "CLISearch")
			out := cmd.OutOrStdout()

			query := strings.Join(args, " ")
			if search.Decide(query, true) == search.ActionWarnEmpty {
				printNotices(out, search.EmptyQueryNotice())
				return errReported
			}

			view, err := a.workflows.Search.Search(ctx, query)
			if err != nil {
				printNotices(out, search.FailureNotice(err))
				return errReported
			}

			printNotices(out, search.Notice(view))
			if err := printGrid(out, view); err != nil {
				return err
			}

			if format == "" {
				return nil
			}
			return a.export(out, view, entity.ResultFormat(format), outPath)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "also export results as md, pdf or docx")
	cmd.Flags().StringVar(&outPath, "out", "", "export path, defaults to search-results.<format>")

	return cmd
}

func (a *app) export(out io.Writer, view *entity.SearchView, format entity.ResultFormat, path string) error {
	f, err := a.workflows.Formatter.Create(format)
	if err != nil {
		return err
	}

	data, err := f.Format(view)
	if err != nil {
		return fmt.Errorf("format results: %w", err)
	}

	if path == "" {
		path = formatter.FileName(f)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(out, "Exported results to %s\n", path)
	return nil
}

// printGrid lays cards out in the same three columns the console uses.
func printGrid(w io.Writer, view *entity.SearchView) error {
	if len(view.Cards) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	for start := 0; start < len(view.Cards); start += entity.GridColumns {
		row := view.Cards[start:min(start+entity.GridColumns, len(view.Cards))]

		lines := [3][]string{}
		for _, card := range row {
			lines[0] = append(lines[0], card.Title)
			lines[1] = append(lines[1], "Score: "+card.Subtitle)
			lines[2] = append(lines[2], "File: "+card.Detail)
		}
		for _, l := range lines {
			fmt.Fprintln(tw, strings.Join(l, "\t"))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
