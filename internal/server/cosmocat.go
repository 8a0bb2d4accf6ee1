package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCosmoCats and ListKittyProducts answer with a bare JSON array, not the
// data envelope.
func (s *Server) ListCosmoCats(c *gin.Context) {
	resp, err := s.cosmocatSvc.ListCosmoCats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListKittyProducts(c *gin.Context) {
	resp, err := s.cosmocatSvc.ListKittyProducts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
