package entity

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing status line produced at a workflow boundary.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}
