package server

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formbuilder/internal/service"
	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// formResponse is a stored form with its decoded layout.
type formResponse struct {
	storage.Form
	Layout model.Layout `json:"layout,omitempty"`
}

func formID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid form id")
		return 0, false
	}
	return uint(id), true
}

func (s *Server) createForm(c *gin.Context) {
	var in service.CreateFormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.abort(c, service.NewFormError(verrs), phaseWrite)
			return
		}
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	form, err := s.deps.Forms.Create(c.Request.Context(), in)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	created(c, form)
}

func (s *Server) listForms(c *gin.Context) {
	forms, err := s.deps.Forms.List(c.Request.Context())
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, gin.H{"items": forms})
}

func (s *Server) formStats(c *gin.Context) {
	stats, err := s.deps.Forms.Stats(c.Request.Context())
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, stats)
}

func (s *Server) getForm(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	form, err := s.deps.Forms.Get(ctx, id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	l, err := s.deps.Forms.Layout(ctx, id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, formResponse{Form: form, Layout: l})
}

// saveContent replaces the form layout with the serialized layout in the
// request body.
func (s *Server) saveContent(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "could not read request body")
		return
	}
	l, err := s.deps.Forms.SaveRawContent(c.Request.Context(), id, body)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, gin.H{"layout": l})
}

func (s *Server) publishForm(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	form, err := s.deps.Forms.Publish(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseWrite)
		return
	}
	success(c, form)
}

func (s *Server) listSubmissions(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	table, err := s.deps.Forms.Submissions(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, table)
}

func (s *Server) exportSubmissions(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	table, err := s.deps.Forms.Submissions(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}

	filename := fmt.Sprintf("form-%d-submissions-%s.xlsx", id, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := submission.ExportXLSX(table, c.Writer); err != nil {
		s.abort(c, err, phaseLoad)
	}
}
