package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; catalog payloads are tiny.
const maxBodyBytes = 1 << 20

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse with no field issues.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteFailure maps err to a response: validation errors become 400 with the
// field issues, ErrNotFound becomes 404 with notFoundMsg, anything else is
// logged and answered with a generic 500 carrying failMsg.
func WriteFailure(w http.ResponseWriter, log *zap.Logger, err error, invalidMsg, notFoundMsg, failMsg string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: invalidMsg, Errors: verr.Issues})
	case notFoundMsg != "" && errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, notFoundMsg)
	default:
		log.Error(failMsg, zap.Error(err))
		WriteError(w, http.StatusInternalServerError, failMsg)
	}
}

// DecodeJSON reads the request body into dst. Malformed JSON and values of
// the wrong type are reported as *models.ValidationError so they surface as
// 400 responses alongside rule failures.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return invalid(field, "type", fmt.Sprintf("must be %s", jsonKind(typeErr.Type.Kind().String())))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return invalid("body", "json", "is not valid JSON")
	case errors.Is(err, io.EOF):
		return invalid("body", "required", "is required")
	default:
		// decimal.Decimal reports unparseable prices from UnmarshalJSON.
		if strings.Contains(err.Error(), "decimal") {
			return invalid("price", "type", "must be a decimal number")
		}
		return invalid("body", "json", err.Error())
	}
}

func invalid(field, rule, message string) error {
	return &models.ValidationError{Issues: []models.FieldIssue{{Field: field, Rule: rule, Message: message}}}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "a string"
	case "bool":
		return "a boolean"
	case "slice", "array":
		return "an array"
	case "map", "struct":
		return "an object"
	case "int", "int64", "int32", "float64", "float32":
		return "a number"
	default:
		return "a " + goKind
	}
}
