package service

import (
	"bytes"
	"net/http"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// OfflineAssets are the pages and assets kept available offline
var OfflineAssets = []string{
	"/",
	"/index.html",
	"/doctor.html",
	"/patient.html",
	"/pharmacist.html",
	"/admin.html",
	"/assets/common.css",
	"/assets/common.js",
	"/assets/video-consultation.js",
	"/assets/system-features.js",
	"/auth.css",
	"/doctor.css",
	"/patient.css",
	"/pharmacist.css",
	"/admin.css",
}

type cachedAsset struct {
	header http.Header
	body   []byte
}

// Manifest describes the offline cache to clients
type Manifest struct {
	CacheName string   `json:"cache_name"`
	Assets    []string `json:"assets"`
}

// AssetCache serves allow-listed assets cache-first in front of an origin
// handler. Only 200 responses are cached.
type AssetCache struct {
	origin  http.Handler
	log     *logrus.Logger
	allowed map[string]struct{}

	mu        sync.RWMutex
	cacheName string
	entries   *sync.Map
}

func NewAssetCache(cacheName string, origin http.Handler, log *logrus.Logger) *AssetCache {
	allowed := make(map[string]struct{}, len(OfflineAssets))
	for _, path := range OfflineAssets {
		allowed[path] = struct{}{}
	}

	return &AssetCache{
		origin:    origin,
		log:       log,
		allowed:   allowed,
		cacheName: cacheName,
		entries:   &sync.Map{},
	}
}

func (c *AssetCache) Manifest() Manifest {
	assets := make([]string, 0, len(c.allowed))
	for path := range c.allowed {
		assets = append(assets, path)
	}
	sort.Strings(assets)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return Manifest{CacheName: c.cacheName, Assets: assets}
}

// Activate switches to cacheName. Entries of any previous cache are dropped.
func (c *AssetCache) Activate(cacheName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cacheName == c.cacheName {
		return
	}
	c.log.Infof("Offline cache %s replaced by %s", c.cacheName, cacheName)
	c.cacheName = cacheName
	c.entries = &sync.Map{}
}

func (c *AssetCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		c.origin.ServeHTTP(w, r)
		return
	}
	if _, ok := c.allowed[r.URL.Path]; !ok {
		c.origin.ServeHTTP(w, r)
		return
	}

	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()

	if cached, ok := entries.Load(r.URL.Path); ok {
		asset := cached.(*cachedAsset)
		writeAsset(w, http.StatusOK, asset.header, asset.body)
		return
	}

	rec := &assetRecorder{header: http.Header{}, status: http.StatusOK}
	c.origin.ServeHTTP(rec, r)

	if rec.status == http.StatusOK {
		entries.Store(r.URL.Path, &cachedAsset{
			header: rec.header.Clone(),
			body:   bytes.Clone(rec.body.Bytes()),
		})
	}
	writeAsset(w, rec.status, rec.header, rec.body.Bytes())
}

// assetRecorder buffers an origin response so it can be cached
type assetRecorder struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *assetRecorder) Header() http.Header { return r.header }

func (r *assetRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
}

func (r *assetRecorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.body.Write(p)
}

func writeAsset(w http.ResponseWriter, status int, header http.Header, body []byte) {
	for key, values := range header {
		w.Header()[key] = append([]string(nil), values...)
	}
	w.WriteHeader(status)
	w.Write(body)
}
