package response

type UploadResponse struct {
	URL          string `json:"url"`
	Key          string `json:"key"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}
