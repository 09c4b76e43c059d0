package cli

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/usecase/upload"
	"github.com/spf13/cobra"
)

func (a *app) newUploadCommand() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "upload --folder FOLDER FILE...",
		Short: "Upload files into a product folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithAction(cmd.Context(), "CLIUpload")
			out := cmd.OutOrStdout()

			files := readFiles(args)

			outcome, err := a.workflows.Upload.UploadBatch(ctx, folder, files)
			if err != nil {
				printNotices(out, upload.RefusedNotice(err))
				return errReported
			}

			printNotices(out, upload.Notices(outcome)...)
			if outcome.Failed > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "product folder to upload into")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

// readFiles loads paths in argument order. An unreadable path stays in the
// batch with ReadErr set and is reported as a failed file.
func readFiles(paths []string) []entity.FileData {
	files := make([]entity.FileData, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			files = append(files, entity.FileData{Filename: filepath.Base(p), ReadErr: err})
			continue
		}
		files = append(files, entity.FileData{
			Filename:    filepath.Base(p),
			ContentType: detectContentType(p, content),
			Content:     content,
		})
	}
	return files
}

// detectContentType prefers the extension and falls back to sniffing.
func detectContentType(path string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if len(content) == 0 {
		return entity.DefaultContentType
	}
	return http.DetectContentType(content)
}
