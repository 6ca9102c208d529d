package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formbuilder/pkg/designer"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type selectionRequest struct {
	ElementID string `json:"elementId"`
}

func (s *Server) openDesigner(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	view, err := s.deps.Designer.Open(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, view)
}

func (s *Server) viewDesigner(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	view, err := s.deps.Designer.View(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, view)
}

func (s *Server) discardDesigner(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	if err := s.deps.Designer.Discard(c.Request.Context(), id); err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	c.Status(http.StatusNoContent)
}

// dropElement applies one drag event. The body is a designer.EventPayload.
func (s *Server) dropElement(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "could not read request body")
		return
	}
	event, err := designer.DecodeEvent(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	outcome, view, err := s.deps.Designer.Drop(c.Request.Context(), id, event)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, gin.H{"outcome": outcome, "designer": view})
}

func (s *Server) updateElement(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	var attrs model.Attributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	view, err := s.deps.Designer.UpdateProperties(c.Request.Context(), id, c.Param("elementId"), attrs)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, view)
}

func (s *Server) removeElement(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	view, err := s.deps.Designer.Remove(c.Request.Context(), id, c.Param("elementId"))
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, view)
}

func (s *Server) selectElement(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	view, err := s.deps.Designer.Select(c.Request.Context(), id, req.ElementID)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, view)
}

func (s *Server) saveDesigner(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	view, err := s.deps.Designer.Save(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, view)
}
