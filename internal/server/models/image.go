package models

// Image is the metadata of an uploaded photo. The bytes live in the blob
// store under Path.
type Image struct {
	ID          int64
	UserID      int64
	FileName    string
	ContentType string
	Path        string
}

// Upload is an image received from a client, before it is stored.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}
