package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
)

// RespondError sends the API's flat error envelope. The status derives
// from the error's taxonomy code; anything unclassified is a 500.
func RespondError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusFor(err), gin.H{
		"error": apperrors.MessageFor(err),
	})
}
