package request

type Base64UploadRequest struct {
	Base64Data string `json:"base64Data" validate:"required"`
	FileName   string `json:"fileName" validate:"required,max=255"`
	MimeType   string `json:"mimeType" validate:"required"`
	Folder     string `json:"folder" validate:"max=100"`
}
