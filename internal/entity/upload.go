package entity

// DefaultContentType is used when a selected file declares no media type.
const DefaultContentType = "application/octet-stream"

// FileData is one file picked by the user, before it is addressed to a folder.
type FileData struct {
	Filename    string
	ContentType string
	Content     []byte
	// ReadErr is set when the local copy could not be read. Such a file
	// fails on its own without reaching the backend.
	ReadErr error
}

// UploadTarget addresses one file inside a product folder.
type UploadTarget struct {
	ProductFolder string `json:"product_folder"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	Content       []byte `json:"-"`
}

// UploadCredential is a single-use presigned write location for one target.
type UploadCredential struct {
	UploadURL string `json:"upload_url"`
}

// UploadFailure records why one file of a batch was not stored.
type UploadFailure struct {
	FileName string `json:"file_name"`
	Message  string `json:"message"`
}

// UploadOutcome aggregates a batch. Succeeded+Failed equals the batch size.
type UploadOutcome struct {
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Failures  []UploadFailure `json:"failures,omitempty"`
}

func (o *UploadOutcome) Total() int {
	return o.Succeeded + o.Failed
}
