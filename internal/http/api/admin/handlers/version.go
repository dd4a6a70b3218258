package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/buildinfo"
)

// Version returns the running build version.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": buildinfo.String()})
}
