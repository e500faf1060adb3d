package handler

import (
	"net/http"

	"swasthya-portal/internal/service"
	"swasthya-portal/pkg/response"
)

type OfflineHandler struct {
	assetCache *service.AssetCache
}

func NewOfflineHandler(assetCache *service.AssetCache) *OfflineHandler {
	return &OfflineHandler{assetCache: assetCache}
}

func (h *OfflineHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Offline manifest", h.assetCache.Manifest())
}

// Assets serves the allow-listed assets cache-first
func (h *OfflineHandler) Assets() http.Handler {
	return h.assetCache
}
