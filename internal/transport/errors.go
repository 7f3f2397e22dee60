package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"catalog-orders/internal/domain"
	"catalog-orders/internal/middleware"

	"go.uber.org/zap"
)

// respondWithServiceError is the single place service errors become HTTP
// responses. An invalid page is a 422. Everything else, including an order
// that references a missing product or a malformed stored order, is a 500
// carrying the error message.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, domain.ErrInvalidPage) {
		logger.Debug("Request rejected", zap.Error(err))
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Loc:  []string{"query"},
			Msg:  err.Error(),
			Type: "value_error",
		}})
		return
	}

	logger.Error("Request failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
}

// respondWithDecodeError answers a body that could not be decoded or validated
func respondWithDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
		Loc:  []string{"body"},
		Msg:  "invalid request body",
		Type: "value_error",
	}})
}

// parsePage reads limit and offset from the query string, applying defaults
// and bounds before anything reaches the store.
func parsePage(query url.Values) (domain.Page, []middleware.ValidationError) {
	page := domain.DefaultPage()
	var errs []middleware.ValidationError

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, intParsingError("limit"))
		case limit < 1:
			errs = append(errs, middleware.ValidationError{
				Loc:  []string{"query", "limit"},
				Msg:  "Input should be greater than or equal to 1",
				Type: "greater_than_equal",
			})
		case limit > domain.MaxLimit:
			errs = append(errs, middleware.ValidationError{
				Loc:  []string{"query", "limit"},
				Msg:  "Input should be less than or equal to " + strconv.Itoa(domain.MaxLimit),
				Type: "less_than_equal",
			})
		default:
			page.Limit = limit
		}
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, intParsingError("offset"))
		case offset < 0:
			errs = append(errs, middleware.ValidationError{
				Loc:  []string{"query", "offset"},
				Msg:  "Input should be greater than or equal to 0",
				Type: "greater_than_equal",
			})
		default:
			page.Offset = offset
		}
	}

	return page, errs
}

func intParsingError(param string) middleware.ValidationError {
	return middleware.ValidationError{
		Loc:  []string{"query", param},
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
		Type: "int_parsing",
	}
}

// optionalQuery returns nil when the parameter is absent or empty
func optionalQuery(query url.Values, key string) *string {
	v := query.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
