package memory

import (
	"testing"

	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/IT-Nick/examdesk/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, storagetest.Options{SupportsDelete: true}, func(t *testing.T) storage.Gateway {
		return New()
	})
}
