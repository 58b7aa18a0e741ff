package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateImageSize rejects files above the configured ceiling. The limit is
// part of the error message so the client can surface it.
func ValidateImageSize(sizeBytes int64, maxMB int) error {
	if sizeBytes > int64(maxMB)*1024*1024 {
		return fmt.Errorf("image exceeds the maximum size of %d MB", maxMB)
	}
	return nil
}

// ValidateMimeType sniffs the content and checks it against the allowed MIME
// prefixes or exact types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
