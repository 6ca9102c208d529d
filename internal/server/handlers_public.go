package server

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formbuilder/internal/service"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// htmlRenderer is the renderer registry entry used for public HTML pages.
const htmlRenderer = "vanilla"

func (s *Server) openPublicForm(c *gin.Context) {
	form, err := s.deps.Public.Open(c.Request.Context(), c.Param("shareURL"))
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	success(c, form)
}

func (s *Server) renderPublicForm(c *gin.Context) {
	form, err := s.deps.Public.Open(c.Request.Context(), c.Param("shareURL"))
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	s.writeHTML(c, http.StatusOK, form, render.RenderOptions{})
}

func (s *Server) publicContract(c *gin.Context) {
	shareURL := c.Param("shareURL")
	form, err := s.deps.Public.Form(c.Request.Context(), shareURL)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	doc, err := openapi.SubmissionSpec(form.Name, shareURL, form.Layout, s.deps.Public.Registry())
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// submitPublicForm accepts JSON objects from API clients and url-encoded
// posts from the rendered HTML form. HTML posts are answered with HTML.
func (s *Server) submitPublicForm(c *gin.Context) {
	shareURL := c.Param("shareURL")
	if c.ContentType() == gin.MIMEJSON {
		var values submission.Values
		if err := c.ShouldBindJSON(&values); err != nil {
			badRequest(c, "submission must be an object of string values")
			return
		}
		cleaned, err := s.deps.Public.Submit(c.Request.Context(), shareURL, values)
		if err != nil {
			s.abort(c, err, phaseWrite)
			return
		}
		created(c, gin.H{"values": cleaned})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		badRequest(c, "invalid form body")
		return
	}
	values := postedValues(c.Request.PostForm)
	_, err := s.deps.Public.Submit(c.Request.Context(), shareURL, values)
	if err == nil {
		c.Data(http.StatusCreated, "text/html; charset=utf-8", []byte(`<p class="fb-success">Form submitted successfully</p>`))
		return
	}
	if !errors.Is(err, submission.ErrValidationFailed) {
		s.abort(c, err, phaseWrite)
		return
	}

	form, loadErr := s.deps.Public.Form(c.Request.Context(), shareURL)
	if loadErr != nil {
		s.abort(c, loadErr, phaseLoad)
		return
	}
	opts := render.RenderOptions{Values: values}.WithSubmissionError(err)
	s.writeHTML(c, http.StatusUnprocessableEntity, form, opts)
}

// postedValues keeps the last value posted for each field. Checkboxes post a
// hidden "false" before the checkbox value. Underscore-prefixed fields are
// form chrome.
func postedValues(form map[string][]string) submission.Values {
	values := make(submission.Values, len(form))
	for name, posted := range form {
		if strings.HasPrefix(name, "_") || len(posted) == 0 {
			continue
		}
		values[name] = posted[len(posted)-1]
	}
	return values
}

func (s *Server) writeHTML(c *gin.Context, status int, form service.PublicForm, opts render.RenderOptions) {
	opts.Title = form.Name
	opts.Description = form.Description
	opts.Action = BasePath + "/public/forms/" + form.ShareURL + "/submissions"
	opts.Registry = s.deps.Public.Registry()
	opts.Hidden = render.MergeHiddenFields(opts.Hidden, render.ShareField(form.ShareURL))

	body, contentType, err := s.deps.Renderers.Render(c.Request.Context(), htmlRenderer, form.Layout, opts)
	if err != nil {
		s.abort(c, err, phaseLoad)
		return
	}
	page := "<!doctype html><html><head><meta charset=\"utf-8\"><title>" +
		html.EscapeString(form.Name) + "</title><link rel=\"stylesheet\" href=\"" + AssetsPath +
		"/formbuilder.css\"></head><body>" + string(body) + "</body></html>"
	c.Data(status, contentType, []byte(page))
}
