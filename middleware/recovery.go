package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notevault/utils"
)

// RecoveryMiddleware turns a handler panic into a structured 500 instead of
// a dropped connection. No internal detail leaks into the response body.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithFields(logrus.Fields{
					"panic":  err,
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("recovered from handler panic")
				if c.Writer.Written() {
					c.Abort()
					return
				}
				utils.InternalError(c, utils.CodeStoreFailure, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
