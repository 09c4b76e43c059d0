package cli

import (
	"fmt"

	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/spf13/cobra"
)

func (a *app) newReindexCommand() *cobra.Command {
	var (
		folder   string
		specific bool
	)

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Refresh the content index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithAction(cmd.Context(), "CLIReindex")
			out := cmd.OutOrStdout()

			reply, err := a.workflows.Index.Refresh(ctx, folder, specific)
			if err != nil {
				printNotices(out, index.FailureNotice(err))
				return errReported
			}

			printNotices(out, index.SuccessNotice())
			fmt.Fprintln(out, index.FormatReply(reply))
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "product folder")
	cmd.Flags().BoolVar(&specific, "specific", false, "only reindex --folder")

	return cmd
}
