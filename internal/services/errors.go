package services

import (
	"errors"
	"net/http"

	"github.com/SundayYogurt/pim_service/internal/helper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MsgInternal = "Error intern del servidor"

// ServiceError carries the HTTP status and the message shown to the client.
// Err keeps the cause for logs and is never serialized.
type ServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func badRequest(msg string) error {
	return &ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func unauthorized(msg string) error {
	return &ServiceError{Status: http.StatusUnauthorized, Message: msg}
}

func notFound(msg string) error {
	return &ServiceError{Status: http.StatusNotFound, Message: msg}
}

func conflict(msg string) error {
	return &ServiceError{Status: http.StatusConflict, Message: msg}
}

func internal(log *zap.Logger, op string, err error) error {
	log.Error(op, zap.Error(err))
	return &ServiceError{Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// StatusOf returns the HTTP status for err and the message safe to show.
func StatusOf(err error) (int, string) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Status, se.Message
	}
	return http.StatusInternalServerError, MsgInternal
}

// repoErr maps a repository error: missing rows to 404, duplicate keys to
// 409 and everything else to a logged 500.
func repoErr(log *zap.Logger, op string, err error, missing, duplicate string) error {
	var se *ServiceError
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(missing)
	case duplicate != "" && helper.IsUniqueViolation(err):
		return conflict(duplicate)
	default:
		return internal(log, op, err)
	}
}
