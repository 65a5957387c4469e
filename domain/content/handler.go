package content

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Triaksa-Space/be-landing-cms/middleware"
	"github.com/Triaksa-Space/be-landing-cms/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// Handler exposes landing page content over HTTP.
type Handler struct {
	reader  *CachedReader
	service *Service
}

func NewHandler(reader *CachedReader, service *Service) *Handler {
	return &Handler{reader: reader, service: service}
}

// GetLandingPage returns the merged content and the raw stored rows.
// GET /cms/landing-page
func (h *Handler) GetLandingPage(c echo.Context) error {
	snap := h.reader.Get(c.Request().Context())

	// Shared caches may hold the page for the server window, browsers must
	// revalidate so an admin sees their edit on the next load.
	sMaxAge := int(h.reader.Revalidate().Seconds())
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=0, s-maxage=%d, must-revalidate", sMaxAge))

	return c.JSON(http.StatusOK, LandingPageResponse{
		Content: snap.Content,
		Raw:     snap.Raw,
	})
}

// PatchLandingPage updates one field.
// PATCH /cms/landing-page
func (h *Handler) PatchLandingPage(c echo.Context) error {
	actorID, _ := middleware.ActorID(c)

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidInput, "Invalid request payload.")
	}

	row, err := h.service.UpdateOne(c.Request().Context(), Update{
		Section: Section(req.Section),
		Key:     req.Key,
		Value:   req.Value,
	}, actorID)
	if err != nil {
		return toAppError(err)
	}

	return c.JSON(http.StatusOK, row)
}

// PutLandingPage applies a bulk update. Partial failure answers 207.
// PUT /cms/landing-page
func (h *Handler) PutLandingPage(c echo.Context) error {
	actorID, _ := middleware.ActorID(c)

	req := new(BulkUpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidInput, "Invalid request payload.")
	}

	updates := make([]Update, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, Update{Section: Section(u.Section), Key: u.Key, Value: u.Value})
	}

	result, err := h.service.UpdateMany(c.Request().Context(), updates, actorID)
	if err != nil {
		return toAppError(err)
	}

	status := bulkStatus(result)
	resp := BulkUpdateResponse{
		Success: result.Outcome() == OutcomeSuccess,
		Code:    bulkCode(status),
		Results: result.Succeeded,
	}
	if len(result.Failed) > 0 {
		resp.Errors = result.Failed
	}

	return c.JSON(status, resp)
}

// bulkStatus maps a bulk outcome to an HTTP status. A total failure is a
// server error when any item hit the database, a client error otherwise.
func bulkStatus(result BulkResult) int {
	switch result.Outcome() {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomePartial:
		return http.StatusMultiStatus
	}
	for _, f := range result.Failed {
		if errors.Is(f.err, ErrStorageWrite) {
			return http.StatusInternalServerError
		}
	}
	return http.StatusBadRequest
}

func bulkCode(status int) string {
	switch status {
	case http.StatusMultiStatus:
		return apperrors.ErrCodeBulkPartialFailure
	case http.StatusBadRequest:
		return apperrors.ErrCodeValidationFailed
	case http.StatusInternalServerError:
		return apperrors.ErrCodeContentWriteFailed
	}
	return ""
}

func toAppError(err error) *apperrors.AppError {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		code := apperrors.ErrCodeMissingField
		if ve.Field == "section" && ve.Message != "is required" {
			code = apperrors.ErrCodeInvalidSection
		}
		return apperrors.NewBadRequest(code, "Invalid content update.").WithDetail(ve.Error())
	case errors.Is(err, ErrUnauthorized):
		return apperrors.NewUnauthorized(apperrors.ErrCodeTokenMissing, "Authentication required.")
	case errors.Is(err, ErrForbidden):
		return apperrors.NewForbidden(apperrors.ErrCodeInsufficientPermission, "You don't have permission to edit the landing page.")
	case errors.Is(err, ErrNotFound):
		return apperrors.NewNotFound(apperrors.ErrCodeContentNotFound, "Content not found.").WithDetail(err.Error())
	case errors.Is(err, ErrAuthzCheck):
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Failed to verify permissions.", err)
	case errors.Is(err, ErrStorageWrite):
		return apperrors.NewInternal(apperrors.ErrCodeContentWriteFailed, "Failed to update content.", err)
	default:
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}
}
