// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

// Errors is the centralized error translator. Handlers never write
// error responses themselves: they attach the error with c.Error and
// return, and this middleware maps it to a status and JSON body after
// the handler chain completes.
//
// Mapping:
//
//   - *datatypes.ServiceError: its status, {"error": message, "code": code}
//   - *datatypes.ValidationError: 400, {"error": ..., "code": "VALIDATION_FAILED", "fields": ...}
//   - anything else: 500, the INTERNAL body; the cause is logged, never
//     leaked to the client
func Errors(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var se *datatypes.ServiceError
		if errors.As(err, &se) {
			if se.Status >= http.StatusInternalServerError {
				log.Error("request failed",
					"method", c.Request.Method,
					"path", c.FullPath(),
					"code", se.Code,
					"error", err,
				)
			}
			c.JSON(se.Status, gin.H{"error": se.Message, "code": se.Code})
			return
		}

		var ve *datatypes.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Request validation failed",
				"code":   "VALIDATION_FAILED",
				"fields": ve.Fields,
			})
			return
		}

		log.Error("unhandled error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": datatypes.ErrInternal.Message,
			"code":  datatypes.ErrInternal.Code,
		})
	}
}
