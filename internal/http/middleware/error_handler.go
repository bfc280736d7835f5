package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/mymove-backend/internal/logger"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно: доменные ошибки
// переводятся в HTTP-статусы, всё остальное маскируется как 500,
// чтобы детали внутренних сбоев не утекали клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		statusCode := http.StatusInternalServerError
		message := "внутренняя ошибка сервера"
		code := string(apperror.ErrCodeInternal)

		var appErr *apperror.AppError
		if errors.As(err.Err, &appErr) {
			statusCode = appErr.HTTPStatus
			message = appErr.Message
			code = string(appErr.Code)
		}

		if logger.Log != nil {
			entry := logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": statusCode,
			})
			if statusCode >= http.StatusInternalServerError {
				entry.Error("ошибка обработки запроса")
			} else {
				entry.Warn("запрос отклонён")
			}
		}

		c.JSON(statusCode, gin.H{"error": message, "code": code})
	}
}
