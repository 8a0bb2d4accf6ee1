package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) ListFeatures(c *gin.Context) {
	resp, err := s.featureSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) EnableFeature(c *gin.Context) {
	s.setFeature(c, true)
}

func (s *Server) DisableFeature(c *gin.Context) {
	s.setFeature(c, false)
}

func (s *Server) setFeature(c *gin.Context, enabled bool) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var err error
	if enabled {
		_, err = s.featureSvc.Enable(ctx, name)
	} else {
		_, err = s.featureSvc.Disable(ctx, name)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	principal, _ := c.Get(contextPrincipalKey)
	s.log.Info("feature toggled",
		zap.String("feature", name),
		zap.Bool("enabled", enabled),
		zap.Any("principal", principal),
	)

	resp, err := s.featureSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
