package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rs/zerolog"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB
	msgBadRequestBody  = "Body request tidak valid"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatus(w, http.StatusOK, data)
}

// WriteStatus marshals data before touching the response so that a marshal
// failure can still be reported as a 500.
func (r Responder) WriteStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.WriteJSON(w, MessageResponse{Message: message})
}

// WriteError writes err as {"message": ...}. Errors that are not an ApiErr are
// unexpected and reported as 500 with their message passed through.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteStatus(w, http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("request failed")
	}

	r.WriteStatus(w, apiErr.StatusCode, MessageResponse{Message: apiErr.Message})
}

// DecodeJSON reads a JSON object from the request body. An empty body decodes
// to the zero value; anything unparsable is an InvalidArgument.
func (r Responder) DecodeJSON(req *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBodySize))
	if err != nil {
		return errs.InvalidArgument(msgBadRequestBody)
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		r.logger.Debug().Err(err).Msg("invalid request body")
		return errs.InvalidArgument(msgBadRequestBody)
	}
	return nil
}
