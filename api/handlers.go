package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
	"github.com/gcbaptista/go-text-indexer/internal/logger"
	"github.com/gcbaptista/go-text-indexer/internal/metrics"
	"github.com/gcbaptista/go-text-indexer/internal/search"
	"github.com/gcbaptista/go-text-indexer/services"
)

// API holds dependencies for API handlers, primarily the indexing engine.
type API struct {
	engine  services.Engine
	metrics *metrics.Metrics
}

// RouterOptions controls optional parts of the router.
type RouterOptions struct {
	Metrics         *metrics.Metrics
	MetricsPath     string // Empty disables the scrape endpoint
	MaxRequestBytes int64
	RateLimit       float64 // Requests per second; 0 disables limiting
	RateBurst       int
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.Engine, m *metrics.Metrics) *API {
	return &API{
		engine:  engine,
		metrics: m,
	}
}

// SetupRoutes defines all the API routes for the text indexer.
func SetupRoutes(router *gin.Engine, engine services.Engine, opts RouterOptions) {
	apiHandler := NewAPI(engine, opts.Metrics)

	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())
	router.Use(MetricsMiddleware(opts.Metrics))
	router.Use(CORSMiddleware())
	if opts.RateLimit > 0 {
		router.Use(RateLimitMiddleware(opts.RateLimit, max(opts.RateBurst, 1)))
	}
	if opts.MaxRequestBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	}

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	if opts.Metrics != nil && opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/search", apiHandler.SearchHandler)                  // Single-term lookup
		apiRoutes.GET("/index-data", apiHandler.IndexDataHandler)           // Index statistics
		apiRoutes.GET("/btree-data", apiHandler.BTreeDataHandler)           // Tree snapshot for visualization
		apiRoutes.GET("/documents", apiHandler.ListDocumentsHandler)        // Stored document IDs
		apiRoutes.GET("/document/:filename", apiHandler.GetDocumentHandler) // Stored document text
		apiRoutes.GET("/suggest", apiHandler.SuggestHandler)                // Close terms for a missed query
	}
}

// SearchHandler answers GET /api/search?q=term. A missing or blank query is
// not an error; it yields found=false with no results.
func (api *API) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if result := ValidateQuery(query); result.HasErrors() {
		SendInvalidQueryError(c, result)
		return
	}
	c.JSON(http.StatusOK, api.engine.Search(query))
}

// SuggestHandler answers GET /api/suggest?q=term&limit=n with indexed terms
// within typo distance of a term that is not indexed.
func (api *API) SuggestHandler(c *gin.Context) {
	query := c.Query("q")
	if result := ValidateQuery(query); result.HasErrors() {
		SendInvalidQueryError(c, result)
		return
	}
	limit, result := ValidateLimit(c.DefaultQuery("limit", strconv.Itoa(DefaultSuggestLimit)))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"term":        search.NormalizeTerm(query),
		"suggestions": api.engine.Suggest(query, limit),
	})
}

// IndexDataHandler returns index-wide statistics with every term ordered by
// frequency.
func (api *API) IndexDataHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Statistics())
}

// BTreeDataHandler returns the nested node structure of the term B-tree.
func (api *API) BTreeDataHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Tree())
}

// ListDocumentsHandler returns the IDs of all stored documents in
// ascending order.
func (api *API) ListDocumentsHandler(c *gin.Context) {
	ids := api.engine.DocumentIDs()
	c.JSON(http.StatusOK, gin.H{
		"documents": ids,
		"count":     len(ids),
	})
}

// GetDocumentHandler returns the stored text of one document.
func (api *API) GetDocumentHandler(c *gin.Context) {
	filename := c.Param("filename")
	if result := ValidateDocumentID(filename); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	doc, err := api.engine.Document(filename)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, filename)
			return
		}
		logger.FromContext(c.Request.Context()).Error("failed to fetch document", "document", filename, "error", err)
		SendInternalError(c, "document fetch", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	counts := api.engine.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-text-indexer",
		"documents": counts.Documents,
		"terms":     counts.Terms,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
