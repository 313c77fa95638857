package utils

import "github.com/gin-gonic/gin"

// JSONOK wraps a success payload the way the frontend expects it.
func JSONOK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// JSONErr emits a structured error with a machine-readable code.
func JSONErr(c *gin.Context, httpCode int, code, message string) {
	c.JSON(httpCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
