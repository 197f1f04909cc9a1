package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Plain mirrors the legacy delete endpoints: a flat {success, error}
// body with HTTP 200 regardless of outcome.
func Plain(c *gin.Context, success bool, errMessage string) {
	if success {
		c.JSON(200, gin.H{"success": true})
		return
	}
	c.JSON(200, gin.H{"success": false, "error": errMessage})
}
