package models

type PresignRequest struct {
	Folder      string `json:"folder" binding:"required,oneof=menus campaigns"`
	Filename    string `json:"filename" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

type PresignResponse struct {
	UploadURL string            `json:"upload_url"`
	ObjectURL string            `json:"object_url"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers"`
	ExpiresIn int64             `json:"expires_in"`
}
