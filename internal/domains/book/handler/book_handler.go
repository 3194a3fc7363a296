package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookrec-backend/internal/domains/book/model"
	"bookrec-backend/internal/domains/book/service"
	recmodel "bookrec-backend/internal/domains/recommendation/model"
	recservice "bookrec-backend/internal/domains/recommendation/service"
	"bookrec-backend/internal/shared/response"
)

// =====================================================
// BOOK HANDLER
// =====================================================

type BookHandler struct {
	bookService service.ServiceInterface
	recService  recservice.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface, recService recservice.ServiceInterface) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		recService:  recService,
	}
}

// Suggest returns titles similar to the typed query.
// GET /api/v1/books/suggest?q=...&limit=...
func (h *BookHandler) Suggest(c *gin.Context) {
	var req model.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	candidates, err := h.bookService.Suggest(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, candidates)
}

// ListBooks returns aggregate rows for the board listing.
// GET /api/v1/books?category=...&limit=...
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), req)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Limit: req.Limit,
		Total: len(books),
	})
}

// GetBookDetail returns one book's aggregate plus its recommendations,
// newest first, matching the original detail page.
// GET /api/v1/books/:id
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	stats, err := h.bookService.GetBookStats(c.Request.Context(), id)
	if err != nil {
		mapBookError(c, err)
		return
	}

	recs, err := h.recService.ListByBook(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"book":            stats,
		"recommendations": recs,
	})
}

// mapBookError translates domain errors into HTTP responses.
func mapBookError(c *gin.Context, err error) {
	var bookErr *model.BookError
	if errors.As(err, &bookErr) {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			response.ErrorResponse(c, http.StatusNotFound, bookErr.Code, bookErr.Message)
		case model.ErrCodeInvalidTitle:
			response.ErrorResponse(c, http.StatusBadRequest, bookErr.Code, bookErr.Message)
		case model.ErrCodeStoreFailure:
			response.ErrorResponse(c, http.StatusServiceUnavailable, bookErr.Code, bookErr.Message)
		default:
			response.InternalServerError(c, bookErr.Message)
		}
		return
	}

	var recErr *recmodel.RecommendationError
	if errors.As(err, &recErr) {
		response.ErrorResponse(c, http.StatusBadRequest, recErr.Code, recErr.Message)
		return
	}

	// Validation errors from ozzo arrive untyped.
	response.BadRequest(c, err.Error())
}
