package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Versioned assets under the static directory
var versionedAssets = []string{
	"css/style.css",
	"js/landing.js",
	"images/favicon.svg",
}

var (
	assetVersions     = map[string]string{}
	assetVersionsMu   sync.RWMutex
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	assetVersionsOnce.Do(func() {
		versions := make(map[string]string, len(versionedAssets))
		for _, name := range versionedAssets {
			if v := computeFileHash(filepath.Join(staticDir, name)); v != "" {
				versions[name] = v
			}
		}

		assetVersionsMu.Lock()
		assetVersions = versions
		assetVersionsMu.Unlock()
		log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the hash for a static asset, or "1" when unknown.
// ctx is accepted so templates call it like the other context helpers.
func AssetVersion(ctx context.Context, name string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[name]; ok {
		return v
	}
	return "1"
}

// AssetURL returns the cache-busted URL of a static asset.
func AssetURL(ctx context.Context, name string) string {
	return "/static/" + name + "?v=" + AssetVersion(ctx, name)
}
