package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/imaging"
	"github.com/oksasatya/t2-user-service/pkg/response"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{application.ErrUserNotFound, http.StatusNotFound},
	{application.ErrDuplicateEmail, http.StatusConflict},
	{application.ErrInvalidCPF, http.StatusUnprocessableEntity},
	{application.ErrSelfEditForbidden, http.StatusForbidden},
	{application.ErrSelfDeleteForbidden, http.StatusForbidden},
	{application.ErrMissingOldPassword, http.StatusBadRequest},
	{application.ErrWrongOldPassword, http.StatusBadRequest},
	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrInvalidResetToken, http.StatusBadRequest},
	{application.ErrResetUnavailable, http.StatusServiceUnavailable},
	{imaging.ErrUnsupportedImage, http.StatusUnprocessableEntity},
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			response.Error[any](c, e.status, e.err.Error(), nil)
			return
		}
	}
	logger.WithError(err).WithFields(logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.GetString("request_id"),
	}).Error("request failed")
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}
