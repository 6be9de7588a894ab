package drivers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrObjectNotFound is returned by Get when no object is stored under the key.
var ErrObjectNotFound = errors.New("object not found")

// ValidateKey rejects keys that could escape the storage root. Keys are flat
// names such as "3f0c…e1.pdf".
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") || strings.HasSuffix(key, metaSuffix) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
