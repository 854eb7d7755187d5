// Package api exposes the paper library over HTTP.
package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"paperdesk/internal/paper"
	"paperdesk/internal/search"
	"paperdesk/internal/vector"
)

// Server is the REST API server.
type Server struct {
	router    *gin.Engine
	papers    *paper.Store
	searcher  *search.Searcher
	semantic  *vector.Service
	outputDir string
}

// NewServer creates the API server and registers its routes. outputDir
// is where generated summary reports live; they are served read-only
// under /output.
func NewServer(papers *paper.Store, searcher *search.Searcher, semantic *vector.Service, outputDir string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:    gin.Default(),
		papers:    papers,
		searcher:  searcher,
		semantic:  semantic,
		outputDir: outputDir,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/output/:filename", s.handleOutputFile)

	api := s.router.Group("/api")
	{
		api.GET("/papers", s.handleListPapers)
		api.GET("/papers/:id", s.handleGetPaper)
		api.DELETE("/papers/:id", s.handleDeletePaper)
		api.GET("/search", s.handleSearch)
		api.GET("/tags", s.handleListTags)

		api.GET("/collections", s.handleListCollections)
		api.POST("/collections", s.handleCreateCollection)
		api.GET("/collections/:id", s.handleGetCollection)
		api.PUT("/collections/:id", s.handleUpdateCollection)
		api.DELETE("/collections/:id", s.handleDeleteCollection)
		api.POST("/collections/:id/papers/:paperID", s.handleAddToCollection)
		api.DELETE("/collections/:id/papers/:paperID", s.handleRemoveFromCollection)
		api.PUT("/collections/:id/papers/:paperID/read", s.handleSetReadStatus)
	}
}

// Run serves HTTP on the given address until the process exits.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthResponse reports service status and semantic availability.
type healthResponse struct {
	Status         string `json:"status"`
	Papers         int    `json:"papers"`
	SemanticSearch bool   `json:"semantic_search"`
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.papers.Count()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, healthResponse{
		Status:         "ok",
		Papers:         count,
		SemanticSearch: s.semantic.Available(),
	})
}

func (s *Server) handleListPapers(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	tag := c.Query("tag")

	papers, err := s.papers.List(paper.ListOptions{Limit: limit, Offset: offset, Tag: tag})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, paperList(papers))
}

func (s *Server) handleGetPaper(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper ID"})
		return
	}

	p, err := s.papers.Get(id)
	if err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeletePaper(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper ID"})
		return
	}

	if err := s.papers.Delete(id); err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []search.Result{})
		return
	}
	limit := intQuery(c, "limit", 100)

	results, err := s.searcher.Search(c.Request.Context(), query, limit)
	if err != nil {
		// Degrade to an empty list: a broken search index should not
		// surface as a server error to browsing clients.
		c.JSON(http.StatusOK, []search.Result{})
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	c.JSON(http.StatusOK, results)
}

// handleOutputFile serves a generated summary report by file name. The
// name is flattened to its base so the route cannot escape outputDir.
func (s *Server) handleOutputFile(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.File(path)
}

func (s *Server) handleListTags(c *gin.Context) {
	tags, err := s.papers.Tags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, tags)
}

// collectionRequest is the body for creating or updating a collection.
type collectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// readStatusRequest is the body for marking a paper read or unread
// within a collection.
type readStatusRequest struct {
	Read bool `json:"read"`
}

func (s *Server) handleListCollections(c *gin.Context) {
	collections, err := s.papers.ListCollections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if collections == nil {
		collections = []paper.Collection{}
	}
	c.JSON(http.StatusOK, collections)
}

func (s *Server) handleCreateCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	coll := &paper.Collection{Name: req.Name, Description: req.Description}
	if _, err := s.papers.SaveCollection(coll); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, coll)
}

func (s *Server) handleGetCollection(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	coll, err := s.papers.GetCollection(id)
	if err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

func (s *Server) handleUpdateCollection(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	coll := &paper.Collection{ID: id, Name: req.Name, Description: req.Description}
	if _, err := s.papers.SaveCollection(coll); err != nil {
		s.collectionError(c, err)
		return
	}

	updated, err := s.papers.GetCollection(id)
	if err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteCollection(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	if err := s.papers.DeleteCollection(id); err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (s *Server) handleAddToCollection(c *gin.Context) {
	collID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	paperID, ok := s.pathID(c, "paperID")
	if !ok {
		return
	}

	if err := s.papers.AddToCollection(collID, paperID); err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRemoveFromCollection(c *gin.Context) {
	collID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	paperID, ok := s.pathID(c, "paperID")
	if !ok {
		return
	}

	if err := s.papers.RemoveFromCollection(collID, paperID); err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSetReadStatus(c *gin.Context) {
	collID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	paperID, ok := s.pathID(c, "paperID")
	if !ok {
		return
	}

	var req readStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.papers.SetReadStatus(collID, paperID, req.Read); err != nil {
		s.collectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// pathID parses an integer path parameter, responding 400 on failure.
func (s *Server) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (s *Server) collectionError(c *gin.Context, err error) {
	if errors.Is(err, paper.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// paperList normalizes a possibly-nil slice for JSON output.
func paperList(papers []paper.Paper) []paper.Paper {
	if papers == nil {
		return []paper.Paper{}
	}
	return papers
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
