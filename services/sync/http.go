package sync

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Sync is the interface for the result recovery service.
type Sync interface {
	ResyncResults(ctx context.Context, tournamentID string, force bool) (*ResyncReport, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Sync

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/resync/:slug_id", h.resyncResultsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) resyncResultsHandler(c *gin.Context) {
	slug := c.Param("slug_id")
	force := c.Query("force") == "true"

	report, err := s.Service.ResyncResults(c.Request.Context(), slug, force)
	if err == ErrThrottled {
		c.JSON(http.StatusOK, gin.H{
			"message": "resync ran recently, pass force=true to run again",
		})
		return
	}
	if err != nil {
		log.Printf("Resync for %v failed: %v\n", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, report)
}
