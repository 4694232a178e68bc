// internal/api/handler.go

// Package api exposes the pitch pipeline over HTTP: document creation
// behind the monthly quota, retrieval and re-rendering of stored pitches,
// archive search, and outreach delivery.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pitchforge/internal/common/config"
	apperrors "pitchforge/internal/common/errors"
	"pitchforge/internal/common/metrics"
	"pitchforge/internal/common/observability"
	"pitchforge/internal/common/validation"
	"pitchforge/internal/composer/assembler"
	"pitchforge/internal/enrich"
	"pitchforge/internal/models"
	"pitchforge/internal/notify"
	"pitchforge/internal/quota"
	"pitchforge/internal/render"
	"pitchforge/internal/reviews"
	"pitchforge/internal/search"
	"pitchforge/internal/store"
)

// PitchArchive is the slice of the search layer the API calls.
type PitchArchive interface {
	Index(ctx context.Context, doc *search.PitchDocument) error
	Search(ctx context.Context, query, userID string, size int) (*search.Result, error)
}

// OutreachSender is the slice of the notification layer the API calls.
type OutreachSender interface {
	SendOutreach(ctx context.Context, doc *assembler.ComposedDocument, recipient notify.Recipient, sectionID string) (*notify.SendResult, error)
	QuotaAlert(ctx context.Context, userID string, used, limit int)
}

// Deps carries the handler's collaborators. Archive and Sender may be nil
// when the backing service is not configured; the affected endpoints then
// report the service as unavailable.
type Deps struct {
	Store    store.PitchStore
	Limiter  *quota.Limiter
	Renderer *render.Markdown
	Enricher *enrich.Client
	Archive  PitchArchive
	Sender   OutreachSender
	Obs      *observability.Observability
}

// Handler serves the pitch API.
type Handler struct {
	config    *config.Config
	store     store.PitchStore
	limiter   *quota.Limiter
	assembler *assembler.Assembler
	renderer  *render.Markdown
	enricher  *enrich.Client
	archive   PitchArchive
	sender    OutreachSender
	obs       *observability.Observability
	logger    *zap.Logger
}

// NewHandler wires the pitch endpoints. A nil logger disables logging.
func NewHandler(cfg *config.Config, deps Deps, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = render.NewMarkdown(nil)
	}
	return &Handler{
		config:    cfg,
		store:     deps.Store,
		limiter:   deps.Limiter,
		assembler: assembler.New(logger),
		renderer:  renderer,
		enricher:  deps.Enricher,
		archive:   deps.Archive,
		sender:    deps.Sender,
		obs:       deps.Obs,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(h.logger), Recovery(h.logger))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/pitches", h.CreatePitch)
		v1.GET("/pitches", h.ListPitches)
		v1.GET("/pitches/search", h.SearchPitches)
		v1.GET("/pitches/:id", h.GetPitch)
		v1.GET("/pitches/:id/document", h.GetDocument)
		v1.POST("/pitches/:id/send", h.SendPitch)
	}
	return router
}

type createPitchRequest struct {
	UserID      string                 `json:"userId"`
	Level       string                 `json:"level"`
	Plan        string                 `json:"plan"`
	Inputs      *models.PitchInputs    `json:"inputs"`
	Branding    models.BrandingOptions `json:"branding"`
	Profile     *models.SellerProfile  `json:"profile"`
	ICPID       string                 `json:"icpId"`
	PricingTier string                 `json:"pricingTier"`
}

type sendPitchRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	SectionID string `json:"sectionId"`
}

// CreatePitch validates the request, reserves a quota slot, composes the
// document, and persists it. The quota slot is returned when any later
// step fails, so rejected requests never count against the month.
func (h *Handler) CreatePitch(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.NewValidationFailedError("request body is unreadable"))
		return
	}
	if details := validatePitchRequest(body); details != nil {
		respondError(c, apperrors.NewValidationFailedError(strings.Join(details, "; ")))
		return
	}

	var req createPitchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(c, apperrors.NewValidationFailedError(err.Error()))
		return
	}

	level, ok := models.ParseLevel(req.Level)
	if !ok {
		respondError(c, apperrors.NewInvalidDocumentLevelError(req.Level))
		return
	}

	// the limiter degrades open on infrastructure failures, so the only
	// error here is an exhausted quota
	limit := config.GetPlanLimit(h.config, req.Plan)
	remaining, err := h.limiter.AllowWithLimit(ctx, req.UserID, limit)
	if err != nil {
		h.alertQuota(ctx, req.UserID, limit, limit)
		respondError(c, apperrors.NewQuotaExceededError(req.UserID, limit, limit))
		return
	}

	h.enrichInputs(ctx, req.Inputs)

	doc, err := h.assembler.Assemble(assembler.Request{
		Level:       level,
		Inputs:      req.Inputs,
		Profile:     req.Profile,
		Branding:    req.Branding,
		ICPID:       req.ICPID,
		PricingTier: req.PricingTier,
		Reviews:     reviews.Analyze(req.Inputs.RawReviews),
	})
	if err != nil {
		var stdErr *apperrors.StandardError
		if !errors.As(err, &stdErr) {
			stdErr = apperrors.NewSectionPlanInvalidError(string(level), err.Error())
		}
		h.rejectCreate(c, req.UserID, level, stdErr)
		return
	}

	markdown, err := h.renderer.RenderDocument(doc)
	if err != nil {
		h.rejectCreate(c, req.UserID, level, apperrors.NewRenderFailedError("document", err))
		return
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		h.rejectCreate(c, req.UserID, level, apperrors.NewRenderFailedError("document", err))
		return
	}

	record := &models.PitchRecord{
		UserID:       req.UserID,
		Level:        level,
		BusinessName: req.Inputs.BusinessName,
		Industry:     req.Inputs.Industry,
		Inputs:       req.Inputs,
		Document:     docJSON,
	}
	if err := h.store.Create(ctx, record); err != nil {
		h.rejectCreate(c, req.UserID, level, apperrors.NewDatabaseInsertFailedError(err))
		return
	}

	h.archivePitch(ctx, record, markdown)

	if used := limit - remaining; float64(used) >= h.config.Quota.AlertThreshold*float64(limit) {
		h.alertQuota(ctx, req.UserID, used, limit)
	}

	metrics.DocumentsGenerated.WithLabelValues(string(level)).Inc()
	metrics.DocumentBuildDuration.WithLabelValues(string(level)).Observe(time.Since(start).Seconds())
	if h.obs != nil {
		h.obs.RecordRequestProcessed(ctx, "success")
		h.obs.RecordRequestDuration(ctx, time.Since(start), "success")
	}
	h.logger.Info("pitch created",
		zap.String("pitchId", record.ID),
		zap.String("userId", record.UserID),
		zap.String("level", string(level)),
		zap.Int("quotaRemaining", remaining))

	c.JSON(http.StatusCreated, gin.H{
		"id":             record.ID,
		"userId":         record.UserID,
		"level":          string(level),
		"businessName":   record.BusinessName,
		"createdAt":      record.CreatedAt,
		"quotaRemaining": remaining,
		"document":       doc,
		"markdown":       markdown,
	})
}

// GetPitch returns the stored record, inputs and composed document included.
func (h *Handler) GetPitch(c *gin.Context) {
	id := c.Param("id")

	record, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, apperrors.NewPitchNotFoundError(id))
		return
	}
	if err != nil {
		respondError(c, apperrors.NewQueryExecutionFailedError("get pitch", err))
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetDocument re-renders the stored document in the requested format.
// Rendering from the persisted composition keeps the output identical to
// what was generated at creation time.
func (h *Handler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	record, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, apperrors.NewPitchNotFoundError(id))
		return
	}
	if err != nil {
		respondError(c, apperrors.NewQueryExecutionFailedError("get pitch", err))
		return
	}

	var doc assembler.ComposedDocument
	if err := json.Unmarshal(record.Document, &doc); err != nil {
		respondError(c, apperrors.NewRenderFailedError("document", err))
		return
	}

	switch format := c.DefaultQuery("format", "markdown"); format {
	case "markdown":
		markdown, err := h.renderer.RenderDocument(&doc)
		if err != nil {
			respondError(c, apperrors.NewRenderFailedError("document", err))
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
	case "html":
		html, err := h.renderer.RenderHTML(&doc)
		if err != nil {
			respondError(c, apperrors.NewRenderFailedError("document", err))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		respondError(c, apperrors.NewValidationFailedError("format must be markdown or html"))
	}
}

// ListPitches returns a user's pitches, newest first, without the stored
// inputs and document blobs.
func (h *Handler) ListPitches(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, apperrors.NewValidationFailedError("userId query parameter is required"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.store.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, apperrors.NewQueryExecutionFailedError("list pitches", err))
		return
	}
	if records == nil {
		records = []*models.PitchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"pitches": records,
		"count":   len(records),
	})
}

// SearchPitches runs a full-text query over the archive.
func (h *Handler) SearchPitches(c *gin.Context) {
	if h.archive == nil {
		respondError(c, apperrors.NewElasticsearchConnectionFailedError(
			errors.New("search is not configured")))
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	result, err := h.archive.Search(c.Request.Context(), c.Query("q"), c.Query("userId"), size)
	if err != nil {
		respondError(c, apperrors.NewSearchQueryFailedError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// SendPitch delivers one section of a stored outreach sequence to the
// given recipient.
func (h *Handler) SendPitch(c *gin.Context) {
	if h.sender == nil {
		respondError(c, apperrors.NewNotificationSendFailedError("email",
			errors.New("notifications are not configured")))
		return
	}

	var req sendPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationFailedError(err.Error()))
		return
	}
	if !validation.ValidateEmail(req.Email) {
		respondError(c, apperrors.NewRecipientInvalidError("email address is invalid"))
		return
	}
	if req.Phone != "" && !validation.ValidatePhone(req.Phone) {
		respondError(c, apperrors.NewRecipientInvalidError("phone number is invalid"))
		return
	}

	id := c.Param("id")
	record, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, apperrors.NewPitchNotFoundError(id))
		return
	}
	if err != nil {
		respondError(c, apperrors.NewQueryExecutionFailedError("get pitch", err))
		return
	}

	var doc assembler.ComposedDocument
	if err := json.Unmarshal(record.Document, &doc); err != nil {
		respondError(c, apperrors.NewRenderFailedError("document", err))
		return
	}

	recipient := notify.Recipient{Email: req.Email, Phone: req.Phone}
	result, err := h.sender.SendOutreach(c.Request.Context(), &doc, recipient, req.SectionID)
	switch {
	case errors.Is(err, notify.ErrNotOutreach),
		errors.Is(err, notify.ErrSectionNotFound),
		errors.Is(err, notify.ErrNoRecipient):
		respondError(c, apperrors.NewValidationFailedError(err.Error()))
	case err != nil:
		respondError(c, apperrors.NewNotificationSendFailedError("email", err))
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Health reports service identity for load balancer checks.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     h.config.App.Name,
		"version": h.config.App.Version,
	})
}

// enrichInputs fills in market data from the lookup service when the
// request carried none. The result is folded into the inputs before they
// are stored, so re-rendering from storage reproduces the same document.
// Lookup failures leave the inputs untouched.
func (h *Handler) enrichInputs(ctx context.Context, inputs *models.PitchInputs) {
	if inputs == nil || inputs.MarketData != nil {
		return
	}
	if h.enricher == nil || !h.enricher.Enabled() {
		return
	}

	market, err := h.enricher.FetchMarketData(ctx, inputs)
	if err != nil {
		h.logger.Warn("market lookup failed, composing without market data",
			zap.String("businessName", inputs.BusinessName),
			zap.Error(err))
		return
	}
	if market != nil {
		inputs.MarketData = market
	}
}

// archivePitch indexes the new pitch for search. The archive is a secondary
// copy, so indexing failures are logged and the creation response is not
// affected.
func (h *Handler) archivePitch(ctx context.Context, record *models.PitchRecord, markdown string) {
	if h.archive == nil {
		return
	}

	doc := &search.PitchDocument{
		ID:           record.ID,
		UserID:       record.UserID,
		Level:        string(record.Level),
		BusinessName: record.BusinessName,
		Industry:     record.Industry,
		Text:         markdown,
		CreatedAt:    record.CreatedAt,
	}
	if record.Inputs != nil {
		doc.City = record.Inputs.City
		doc.State = record.Inputs.State
	}

	if err := h.archive.Index(ctx, doc); err != nil {
		h.logger.Warn("pitch indexing failed",
			zap.String("pitchId", record.ID),
			zap.Error(err))
	}
}

// rejectCreate returns the reserved quota slot and reports the failure.
func (h *Handler) rejectCreate(c *gin.Context, userID string, level models.DocumentLevel, stdErr *apperrors.StandardError) {
	ctx := c.Request.Context()
	h.limiter.Release(ctx, userID)
	metrics.DocumentsFailed.WithLabelValues(string(level), string(stdErr.Code)).Inc()
	if h.obs != nil {
		h.obs.RecordRequestProcessed(ctx, "failed")
	}
	h.logger.Error("pitch creation failed",
		zap.String("userId", userID),
		zap.String("level", string(level)),
		zap.String("errorCode", string(stdErr.Code)),
		zap.String("details", stdErr.Details))
	respondError(c, stdErr)
}

func (h *Handler) alertQuota(ctx context.Context, userID string, used, limit int) {
	if h.sender == nil {
		return
	}
	h.sender.QuotaAlert(ctx, userID, used, limit)
}

// respondError writes a structured error with its mapped HTTP status.
func respondError(c *gin.Context, stdErr *apperrors.StandardError) {
	c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"error": stdErr})
}
