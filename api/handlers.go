// Package api exposes the query surface over HTTP with gin. Every operation
// reads the engine's immutable snapshot; the layer adds request ids, CORS,
// metrics, and the standardized error envelope.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gutensearch/gutensearch/internal/metrics"
	"github.com/gutensearch/gutensearch/services"
)

// API holds dependencies for the HTTP handlers.
type API struct {
	searcher services.Searcher
	metrics  *metrics.Metrics
	log      *logrus.Entry
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.Searcher, m *metrics.Metrics, log *logrus.Entry) *API {
	return &API{searcher: searcher, metrics: m, log: log}
}

// SetupRoutes registers the query API on the router.
func SetupRoutes(router *gin.Engine, searcher services.Searcher, m *metrics.Metrics, log *logrus.Entry) {
	apiHandler := NewAPI(searcher, m, log)

	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", apiHandler.HealthHandler)
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/advanced-search", apiHandler.AdvancedSearchHandler)
	router.GET("/suggestions", apiHandler.SuggestionsHandler)
	router.GET("/books/:id", apiHandler.DocumentInfoHandler)
	router.GET("/stats", apiHandler.StatsHandler)
}

// HealthHandler reports corpus, vocabulary, and graph sizes.
func (api *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.searcher.Health())
}

// SearchHandler answers single-term queries.
// Query params: query (required), ranking (occurrences|authority|hybrid).
func (api *API) SearchHandler(c *gin.Context) {
	start := time.Now()
	result, err := api.searcher.Search(c.Query("query"), c.Query("ranking"))
	api.observeSearch(start, len(result.Results), err)
	if err != nil {
		SendEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdvancedSearchHandler answers pattern queries evaluated against the
// vocabulary. Query params: regex (required), ranking.
func (api *API) AdvancedSearchHandler(c *gin.Context) {
	start := time.Now()
	result, err := api.searcher.AdvancedSearch(c.Query("regex"), c.Query("ranking"))
	api.observeSearch(start, len(result.Results), err)
	if err != nil {
		SendEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestionsHandler returns graph-neighbor recommendations for a term's top
// results. Query params: query (required), top_n.
func (api *API) SuggestionsHandler(c *gin.Context) {
	topN := 0
	if v := c.Query("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "top_n must be a non-negative integer")
			return
		}
		topN = n
	}
	result, err := api.searcher.Suggestions(c.Query("query"), topN)
	if err != nil {
		SendEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DocumentInfoHandler reports one document's authority score and graph
// standing.
func (api *API) DocumentInfoHandler(c *gin.Context) {
	info, err := api.searcher.DocumentInfo(c.Param("id"))
	if err != nil {
		SendEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// StatsHandler reports global corpus and graph statistics.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.searcher.Stats())
}

func (api *API) observeSearch(start time.Time, resultCount int, err error) {
	if api.metrics == nil {
		return
	}
	resultType := "hit"
	switch {
	case err != nil:
		resultType = "error"
	case resultCount == 0:
		resultType = "zero_result"
	}
	api.metrics.SearchesTotal.WithLabelValues(resultType).Inc()
	api.metrics.SearchLatency.Observe(time.Since(start).Seconds())
}
