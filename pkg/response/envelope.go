package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "itemstore-backend/pkg/errors"

	"go.uber.org/zap"
)

// Envelope is the uniform response wrapper returned by every endpoint.
// The HTTP status line always mirrors StatusCode.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Body       interface{} `json:"body"`
	Message    string      `json:"message"`
}

// Writer shapes operation outcomes into envelopes.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a new envelope writer
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// Success writes a success envelope with the given status and body.
func (wr *Writer) Success(w http.ResponseWriter, status int, body interface{}, message string) {
	wr.write(w, Envelope{
		StatusCode: status,
		Body:       body,
		Message:    message,
	})
}

// Error maps an operation failure to an error envelope. The body is always
// null; the status and message come from the AppError taxonomy. Anything that
// is not an AppError becomes an InternalError so no fault escapes unhandled.
func (wr *Writer) Error(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewInternalError("Internal server error").WithCause(err)
	}

	wr.write(w, Envelope{
		StatusCode: appErr.HTTPStatus,
		Body:       nil,
		Message:    appErr.Message,
	})
}

func (wr *Writer) write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		wr.logger.Error("Failed to encode response envelope", zap.Error(err))
	}
}

// ParseJSONBody parses a JSON request body with a size limit, rejecting
// unknown fields and trailing data so malformed requests fail before
// reaching business logic.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return err
	}

	// Decode stops at the first complete value; anything after it is junk.
	if err := decoder.Decode(new(json.RawMessage)); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}

	return nil
}
