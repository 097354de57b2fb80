package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(FolderResumes, "cv.pdf")
	assert.True(t, strings.HasPrefix(key, "resumes/"))
	assert.True(t, strings.HasSuffix(key, "-cv.pdf"))
	assert.NotEqual(t, key, ObjectKey(FolderResumes, "cv.pdf"))

	escaped := ObjectKey(FolderProfilePictures, "../../etc/passwd")
	assert.Equal(t, 1, strings.Count(escaped, "/"))
}
