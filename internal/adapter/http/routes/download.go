package routes

import (
	"descarga_masiva/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests      = "/requests"
	PathSnapshots     = "/snapshots"
	PathVerifications = "/verifications"
)

func addDownloadRoutes(rg *gin.RouterGroup, h *handlers.DownloadRequestHandler) {
	requests := rg.Group(PathRequests)
	{
		requests.POST("", h.Submit)
		requests.GET("", h.List)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/verify", h.Verify)
		requests.POST("/:id/download", h.Download)
		requests.GET("/:id/packages/:package_id/invoices", h.ReadPackage)
	}

	rg.GET(PathSnapshots+"/:id", h.GetSnapshot)
	rg.GET(PathVerifications+"/:request_id", h.GetByRequestID)
}
