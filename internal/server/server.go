// Package server exposes the editing session and export pipeline over a
// local HTTP API. It is the bridge the form and branding UI talks to;
// the session itself stays single-writer behind it.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/registry"
	"github.com/rezonia/invoice-studio/internal/render"
	"github.com/rezonia/invoice-studio/internal/store"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	session  *store.Session
	registry *registry.Registry
	pipeline *export.Pipeline
	logger   *zap.Logger

	// exporting is the busy flag preventing overlapping exports.
	exporting atomic.Bool
}

// NewServer creates a new API server around a fresh editing session.
func NewServer(config *Config, reg *registry.Registry, logger *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		session:  store.NewSession(),
		registry: reg,
		pipeline: export.NewPipeline(render.NewPDFRenderer(logger), logger),
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Session documents
		v1.GET("/invoice", s.handleGetInvoice)
		v1.PUT("/invoice", s.handleReplaceInvoice)
		v1.GET("/branding", s.handleGetBranding)
		v1.PUT("/branding", s.handleSetBranding)

		// Line items
		v1.POST("/items", s.handleAddItem)
		v1.PATCH("/items/:id", s.handleUpdateItem)
		v1.DELETE("/items/:id", s.handleRemoveItem)

		// Scalar inputs feeding the totals chain
		v1.PUT("/discount", s.handleSetDiscount)
		v1.PUT("/tax", s.handleSetTax)
		v1.PUT("/charges", s.handleSetCharges)

		// Display-only fields
		v1.PUT("/watermark", s.handleSetWatermark)
		v1.PUT("/header", s.handleSetHeader)
		v1.PUT("/footer", s.handleSetFooter)
		v1.PUT("/sender", s.handleSetSender)
		v1.PUT("/client", s.handleSetClient)
		v1.PUT("/identification", s.handleSetIdentification)
		v1.PUT("/text", s.handleSetFreeText)

		// Catalog and registry
		v1.GET("/currencies", s.handleCurrencies)
		v1.GET("/clients", s.handleListClients)
		v1.POST("/clients", s.handleSaveClient)
		v1.GET("/item-templates", s.handleListTemplates)
		v1.POST("/item-templates", s.handleSaveTemplate)

		// Exports
		v1.GET("/export/:format", s.handleExport)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Invoice())
}

func (s *Server) handleReplaceInvoice(c *gin.Context) {
	var inv model.InvoiceData
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.ReplaceInvoice(&inv))
}

func (s *Server) handleGetBranding(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Branding())
}

func (s *Server) handleSetBranding(c *gin.Context) {
	var b model.BrandingOptions
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetBranding(b))
}

func (s *Server) handleAddItem(c *gin.Context) {
	// An absent body means a blank item; only a malformed one is an error.
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var template *model.LineItem
	if req.TemplateDescription != "" {
		t, ok := s.registry.TemplateByDescription(req.TemplateDescription)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no saved item with that description"})
			return
		}
		template = &t
	}

	c.JSON(http.StatusOK, s.session.AddItem(template))
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	var patch ItemPatchRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := s.session.UpdateItem(c.Param("id"), patch)
	if err != nil {
		s.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	inv, err := s.session.RemoveItem(c.Param("id"))
	if err != nil {
		s.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleSetDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := s.session.SetDiscount(req.Type, req.Value)
	if err != nil {
		s.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleSetTax(c *gin.Context) {
	var req TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetTaxRate(req.Rate))
}

func (s *Server) handleSetCharges(c *gin.Context) {
	var req ChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetAdditionalCharges(req.Amount))
}

func (s *Server) handleSetWatermark(c *gin.Context) {
	var req WatermarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetWatermark(req.Text, req.Opacity))
}

func (s *Server) handleSetHeader(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetHeader(req.Text, req.Show))
}

func (s *Server) handleSetFooter(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetFooter(req.Text, req.Show))
}

func (s *Server) handleSetSender(c *gin.Context) {
	var p model.Party
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetSender(p))
}

func (s *Server) handleSetClient(c *gin.Context) {
	var p model.Party
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetClient(p))
}

func (s *Server) handleSetIdentification(c *gin.Context) {
	var req IdentificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetIdentification(req.InvoiceNumber, req.Date, req.DueDate, req.Currency))
}

func (s *Server) handleSetFreeText(c *gin.Context) {
	var req FreeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.session.SetFreeText(req.Notes, req.Terms, req.BankDetails))
}

func (s *Server) handleCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, model.Currencies)
}

func (s *Server) handleListClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": s.registry.Clients()})
}

func (s *Server) handleSaveClient(c *gin.Context) {
	var req SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.registry.SaveClient(req.Name); err != nil {
		s.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": s.registry.Clients()})
}

func (s *Server) handleListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.registry.ItemTemplates()})
}

func (s *Server) handleSaveTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.LineItem{
		ID:          model.NewItemID(),
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}
	if err := s.registry.SaveItemTemplate(item); err != nil {
		s.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.registry.ItemTemplates()})
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.exporting.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": model.ErrExportBusy.Error()})
		return
	}
	defer s.exporting.Store(false)

	inv, branding := s.session.Snapshot()
	file, err := s.pipeline.Export(inv, branding, format)
	if err != nil {
		// The session is untouched by a failed export; report only that
		// the export did not complete.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "export did not complete"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (s *Server) writeMutationError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrLastItem), errors.Is(err, model.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEmptyEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Mutation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
