package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is
// empty, a default is derived from the status code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

// writeDomainErr maps a core error kind to an HTTP status. Unclassified errors
// become 500 with a generic message.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch domerrors.KindOf(err) {
	case domerrors.KindNotFound:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case domerrors.KindNotAMember, domerrors.KindInsufficientPermission:
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case domerrors.KindConflict:
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case domerrors.KindInvalidRequest:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
