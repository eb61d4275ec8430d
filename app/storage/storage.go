package storage

import "io"

// SavedImage is the reference kept on the student record: an opaque storage
// id used for deletion and a URL the frontend can load.
type SavedImage struct {
	ID  string `json:"public_id"`
	URL string `json:"secure_url"`
}

// ImageStore holds uploaded identity documents. The app ships a local disk
// implementation; a remote provider only needs to satisfy this interface.
type ImageStore interface {
	// Save stores the content under a fresh id inside folder and returns
	// the reference. filename is only consulted for its extension.
	Save(folder, filename string, content io.Reader) (*SavedImage, error)
	// Delete removes a stored image. Deleting an unknown id is not an
	// error.
	Delete(id string) error
}
