package upload

import (
	"fmt"

	"github.com/futig/product-search/internal/entity"
)

// Notices turns a batch outcome into the lines shown to the user.
func Notices(outcome *entity.UploadOutcome) []entity.Notice {
	var notices []entity.Notice

	if outcome.Succeeded > 0 {
		notices = append(notices, entity.Notice{
			Level: entity.NoticeSuccess,
			Text:  fmt.Sprintf("Successfully uploaded %d file(s)", outcome.Succeeded),
		})
	}
	if outcome.Failed > 0 {
		notices = append(notices, entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Failed to upload %d file(s)", outcome.Failed),
		})
	}
	for _, f := range outcome.Failures {
		notices = append(notices, entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Error uploading %s: %s", f.FileName, f.Message),
		})
	}

	return notices
}

// RefusedNotice reports a batch that was not started.
func RefusedNotice(err error) entity.Notice {
	return entity.Notice{
		Level: entity.NoticeWarning,
		Text:  fmt.Sprintf("Upload not started: %v", err),
	}
}
