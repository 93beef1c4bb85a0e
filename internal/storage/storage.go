package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Upload contract for condition documents: PDF only, 5 MB cap.
const (
	MaxUploadSize  = 5 << 20
	ContentTypePDF = "application/pdf"
)

var ErrNotFound = errors.New("condition document not found")

// ConditionStore persists patient condition PDFs under an opaque object
// name. The name is recorded on the User and is the only lookup key.
type ConditionStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

// ObjectName builds a stored name keyed by user id and upload time, with
// a random suffix so repeated uploads in the same millisecond never clash.
func ObjectName(userID uint) string {
	return fmt.Sprintf(
		"patient-%d-%d-%s.pdf",
		userID,
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
	)
}
