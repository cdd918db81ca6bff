package fu

import (
	"go-ml.dev/pkg/iokit"
	"path/filepath"
)

/*
CachePath resolves relative names into the user cache directory
*/
func CachePath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "bankloan", s))
}
