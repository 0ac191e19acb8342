package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/reg-hunter/internal/aggregate"
	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/dto"
	"github.com/DjordjeVuckovic/reg-hunter/internal/pipeline"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/blob"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/pagination"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/stringsutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const SnippetChars = 500

type Processor interface {
	Process(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error)
	Preview(ctx context.Context, sub pipeline.Submission) (*pipeline.Preview, error)
	FullText(ctx context.Context, doc *domain.Document) (string, error)
}

type Aggregator interface {
	Visualization(ctx context.Context) (*aggregate.Visualization, error)
}

type DocumentRouter struct {
	e          *echo.Echo
	processor  Processor
	docs       storage.DocumentStore
	blobs      storage.BlobStore
	aggregator Aggregator
}

func NewDocumentRouter(
	e *echo.Echo,
	processor Processor,
	docs storage.DocumentStore,
	blobs storage.BlobStore,
	aggregator Aggregator,
) *DocumentRouter {
	return &DocumentRouter{
		e:          e,
		processor:  processor,
		docs:       docs,
		blobs:      blobs,
		aggregator: aggregator,
	}
}

func (r *DocumentRouter) Bind() {
	r.e.POST("/fetch", r.submitHandler)
	r.e.POST("/fetch-preview", r.previewHandler)
	r.e.GET("/list", r.listHandler)
	r.e.GET("/detail/:id", r.detailHandler)
	r.e.GET("/visualization-data", r.visualizationHandler)
}

// submitHandler godoc
// @Summary Submit a document
// @Description Analyzes text or a fetched URL and stores it. Re-submitting the same URL (or text prefix) updates the stored document.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Text or URL to analyze"
// @Success 201 {object} dto.SubmitResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /fetch [post]
func (r *DocumentRouter) submitHandler(c echo.Context) error {
	sub, err := bindSubmission(c)
	if err != nil {
		return err
	}

	res, err := r.processor.Process(c.Request().Context(), sub)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewSubmitResponse(res.Document, res.Created))
}

// previewHandler godoc
// @Summary Preview a document analysis
// @Description Returns the summary and derived metadata without storing anything.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Text or URL to analyze"
// @Success 200 {object} pipeline.Preview
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /fetch-preview [post]
func (r *DocumentRouter) previewHandler(c echo.Context) error {
	sub, err := bindSubmission(c)
	if err != nil {
		return err
	}

	preview, err := r.processor.Preview(c.Request().Context(), sub)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, preview)
}

// listHandler godoc
// @Summary List documents
// @Description Returns stored documents newest first with a short text snippet.
// @Tags documents
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} pagination.OffsetResult[dto.ListItem]
// @Failure 400 {object} map[string]string
// @Router /list [get]
func (r *DocumentRouter) listHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := echo.QueryParamsBinder(c).
		Int("page", &req.Page).
		Int("page_size", &req.Size).
		BindError(); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	req.Validate()

	ctx := c.Request().Context()
	total, docs, err := r.docs.List(ctx, req.Offset(), req.Size)
	if err != nil {
		return err
	}

	items := make([]dto.ListItem, 0, len(docs))
	for i := range docs {
		items = append(items, dto.NewListItem(&docs[i], r.snippet(ctx, &docs[i])))
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResult(items, total, req.Page, req.Size))
}

// detailHandler godoc
// @Summary Get a document
// @Description Returns the stored document with its full text.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Success 200 {object} dto.Detail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /detail/{id} [get]
func (r *DocumentRouter) detailHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid document id", err)
	}

	ctx := c.Request().Context()
	doc, err := r.docs.Get(ctx, id)
	if err != nil {
		return err
	}

	text, err := r.processor.FullText(ctx, doc)
	if err != nil {
		slog.Warn("Document text unreadable", "id", doc.ID, "path", doc.ContentPath, "error", err)
		text = ""
	}

	return c.JSON(http.StatusOK, dto.NewDetail(doc, text))
}

// visualizationHandler godoc
// @Summary Aggregated visualization data
// @Description Cross-document counts, matrices, word frequencies, timeline and network graph.
// @Tags visualization
// @Produce json
// @Success 200 {object} aggregate.Visualization
// @Failure 500 {object} map[string]string
// @Router /visualization-data [get]
func (r *DocumentRouter) visualizationHandler(c echo.Context) error {
	v, err := r.aggregator.Visualization(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (r *DocumentRouter) snippet(ctx context.Context, doc *domain.Document) string {
	if !doc.IsBlobBacked() {
		return stringsutil.TruncateRunes(doc.RawText, SnippetChars)
	}
	s, err := blob.ReadPrefix(ctx, r.blobs, doc.ContentPath, SnippetChars)
	if err != nil {
		slog.Warn("Snippet unreadable", "id", doc.ID, "path", doc.ContentPath, "error", err)
		return ""
	}
	return s
}

func bindSubmission(c echo.Context) (pipeline.Submission, error) {
	var req dto.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return pipeline.Submission{}, apperr.NewValidationWrap("invalid request", err)
	}
	return pipeline.Submission{Text: req.Text, URL: req.URL, Title: req.Title}, nil
}
