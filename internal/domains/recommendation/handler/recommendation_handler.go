package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "bookrec-backend/internal/domains/book/model"
	"bookrec-backend/internal/domains/recommendation/model"
	"bookrec-backend/internal/domains/recommendation/service"
	"bookrec-backend/internal/shared/response"
)

// =====================================================
// RECOMMENDATION HANDLER
// =====================================================

type RecommendationHandler struct {
	recService service.ServiceInterface
}

func NewRecommendationHandler(recService service.ServiceInterface) *RecommendationHandler {
	return &RecommendationHandler{recService: recService}
}

// Attach records a recommendation for an existing book.
// POST /api/v1/books/:id/recommendations
func (h *RecommendationHandler) Attach(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	var req model.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rec, err := h.recService.Attach(c.Request.Context(), bookID, req)
	if err != nil {
		mapRecommendationError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rec)
}

// Submit handles the full submission form: resolve the title to a book,
// creating one when no match exists, then attach the recommendation.
// POST /api/v1/submissions
func (h *RecommendationHandler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookID, err := h.recService.Submit(c.Request.Context(), req)
	if err != nil {
		mapRecommendationError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.SubmitResponse{BookID: bookID})
}

// mapRecommendationError translates domain errors into HTTP responses.
func mapRecommendationError(c *gin.Context, err error) {
	var recErr *model.RecommendationError
	if errors.As(err, &recErr) {
		switch recErr.Code {
		case model.ErrCodeInvalidRating:
			response.ErrorResponse(c, http.StatusBadRequest, recErr.Code, recErr.Message)
		case model.ErrCodeBookNotFound:
			response.ErrorResponse(c, http.StatusNotFound, recErr.Code, recErr.Message)
		case model.ErrCodeStoreFailure:
			response.ErrorResponse(c, http.StatusServiceUnavailable, recErr.Code, recErr.Message)
		default:
			response.InternalServerError(c, recErr.Message)
		}
		return
	}

	// Submit delegates resolution to the book service, so its errors
	// surface here too.
	var bookErr *bookmodel.BookError
	if errors.As(err, &bookErr) {
		switch bookErr.Code {
		case bookmodel.ErrCodeInvalidTitle:
			response.ErrorResponse(c, http.StatusBadRequest, bookErr.Code, bookErr.Message)
		case bookmodel.ErrCodeStoreFailure:
			response.ErrorResponse(c, http.StatusServiceUnavailable, bookErr.Code, bookErr.Message)
		default:
			response.InternalServerError(c, bookErr.Message)
		}
		return
	}

	// Validation errors from ozzo arrive untyped.
	response.BadRequest(c, err.Error())
}
