package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PresignedUpload describes a direct-to-storage upload granted to a client.
type PresignedUpload struct {
	UploadURL string
	FileURL   string
	Key       string
	ExpiresAt time.Time
}

// FileStorage issues presigned upload URLs for user files.
type FileStorage interface {
	// PresignUpload returns a PUT URL for key valid for the configured expiry and the
	// public URL the object will be served from.
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)
}

// Upload folders for user files.
const (
	FolderProfilePictures = "profile-pictures"
	FolderResumes         = "resumes"
)

// ObjectKey builds a collision-free storage key for an uploaded file. Path separators
// in fileName are replaced so a client cannot escape the folder.
func ObjectKey(folder, fileName string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(fileName))

	return folder + "/" + uuid.NewString() + "-" + name
}
