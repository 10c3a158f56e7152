// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/readloop/bookreview-backend/internal/services"
	"github.com/readloop/bookreview-backend/internal/utils"
)

// respondServiceError maps service-layer errors to HTTP statuses. Unknown
// errors are treated as storage failures: logged in full, reported as an
// opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrNotReviewOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
			return
		}
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c)
	}
}
