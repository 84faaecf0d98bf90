package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/popcorn/services/session"
	"github.com/webtor-io/popcorn/services/watched"
)

type Handler struct {
	s *session.Session
}

func RegisterHandler(r *gin.Engine, s *session.Session) {
	h := &Handler{
		s: s,
	}
	gr := r.Group("/api")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
	}))
	gr.GET("/state", h.state)
	gr.GET("/summary", h.summary)
	gr.GET("/events", h.events)
	gr.PUT("/query", h.query)
	gr.POST("/select", h.selectMovie)
	gr.POST("/back", h.back)
	gr.POST("/watched", h.addWatched)
	gr.DELETE("/watched/:id", h.removeWatched)
}

type queryRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

type watchedRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (s *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.s.Snapshot())
}

func (s *Handler) summary(c *gin.Context) {
	c.JSON(http.StatusOK, s.s.Summary())
}

func (s *Handler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	s.s.SetQuery(req.Query)
	c.JSON(http.StatusOK, s.s.Snapshot())
}

func (s *Handler) selectMovie(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := s.s.Select(req.ID); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.s.Snapshot())
}

func (s *Handler) back(c *gin.Context) {
	s.s.Back()
	c.JSON(http.StatusOK, s.s.Snapshot())
}

func (s *Handler) addWatched(c *gin.Context) {
	var req watchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	_, err := s.s.AddWatched(req.Rating)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, s.s.Snapshot())
	case errors.Is(err, watched.ErrInvalidRating):
		abort(c, http.StatusBadRequest, err)
	case errors.Is(err, watched.ErrAlreadyWatched),
		errors.Is(err, session.ErrNoDetailOpen),
		errors.Is(err, session.ErrDetailNotLoaded):
		abort(c, http.StatusConflict, err)
	default:
		log.WithError(err).Error("failed to add watched movie")
		abort(c, http.StatusInternalServerError, err)
	}
}

func (s *Handler) removeWatched(c *gin.Context) {
	s.s.RemoveWatched(c.Param("id"))
	c.JSON(http.StatusOK, s.s.Snapshot())
}

func (s *Handler) events(c *gin.Context) {
	ch, unsubscribe := s.s.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("state", s.s.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case sn, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("state", sn)
			c.Writer.Flush()
		}
	}
}

func abort(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
