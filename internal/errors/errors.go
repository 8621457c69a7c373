package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailRequired is returned when creating a user with an empty email.
	ErrEmailRequired = errors.New("email address is required")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipeNotFound is returned when a recipe is not found or owned by another user.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrTagNotFound is returned when a tag is not found or owned by another user.
	ErrTagNotFound = errors.New("tag not found")
	// ErrIngredientNotFound is returned when an ingredient is not found or owned by another user.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrInvalidFilter is returned when a tags/ingredients filter contains a non-integer id.
	ErrInvalidFilter = errors.New("invalid filter id list")
	// ErrCrossOwner is returned when a recipe would be linked to another user's tag or ingredient.
	ErrCrossOwner = errors.New("associated item belongs to another user")
	// ErrImageRequired is returned when an image upload request carries no file.
	ErrImageRequired = errors.New("image file is required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrEmailRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_REQUIRED")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrRecipeNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case ErrTagNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case ErrIngredientNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case ErrInvalidFilter:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILTER")
	case ErrCrossOwner:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CROSS_OWNER")
	case ErrImageRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "IMAGE_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
