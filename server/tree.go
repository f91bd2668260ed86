package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ntt-parser/parser"
	"ntt-parser/store"
)

func (s *Server) logFor(c *gin.Context) logrus.FieldLogger {
	return s.log.WithField("request_id", c.GetString("request_id"))
}

func readSource(c *gin.Context) ([]byte, bool) {
	source, err := io.ReadAll(c.Request.Body)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		abort(c, status, fmt.Errorf("couldn't read source code from body: %w", err))
		return nil, false
	}
	return source, true
}

func abort(c *gin.Context, status int, err error) {
	_ = c.AbortWithError(status, err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// generateTree parses the body with the ntt parser.
func (s *Server) generateTree(c *gin.Context) {
	source, ok := readSource(c)
	if !ok {
		return
	}

	result := s.parser.Parse(string(source))
	resp := gin.H{}
	for k, v := range result.Map() {
		resp[k] = v
	}

	if s.cfg.Reference.Enabled || c.Query("reference") != "" {
		report, err := s.ref.Check(c.Request.Context(), source)
		if err != nil {
			abort(c, http.StatusInternalServerError, err)
			return
		}
		resp["reference"] = report
	}

	if id := s.record(c, "http", result); id != "" {
		resp["id"] = id
	}
	c.JSON(http.StatusOK, resp)
}

// generateLanguageTree keeps the multi-language outline surface: "ntt" goes
// to our parser, anything else to the tree-sitter outline.
func (s *Server) generateLanguageTree(c *gin.Context) {
	language := c.Param("language")
	if language == "ntt" {
		s.generateTree(c)
		return
	}

	source, ok := readSource(c)
	if !ok {
		return
	}

	outline, err := s.ref.Outline(c.Request.Context(), language, source)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, outline)
}

func (s *Server) tokens(c *gin.Context) {
	source, ok := readSource(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": s.parser.Tokens(string(source))})
}

// check answers with diagnostics and their rendered code frames only.
func (s *Server) check(c *gin.Context) {
	source, ok := readSource(c)
	if !ok {
		return
	}

	result := s.parser.Parse(string(source))
	frames := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		frames[i] = parser.FormatDiagnostic(result.Source, d)
	}
	s.record(c, "http", result)

	c.JSON(http.StatusOK, gin.H{
		"valid":       result.Valid(),
		"diagnostics": result.Map()["diagnostics"],
		"frames":      frames,
	})
}

// record stores the run when persistence is on and returns its id. Storage
// failures are logged, never surfaced to the caller.
func (s *Server) record(c *gin.Context, origin string, result *parser.Result) string {
	if s.store == nil {
		return ""
	}
	run := store.NewRun(origin, result)
	if err := s.store.Save(c.Request.Context(), run); err != nil {
		s.logFor(c).WithError(err).Warn("failed to record run")
		return ""
	}
	return run.ID
}

func (s *Server) history(c *gin.Context) {
	if s.store == nil {
		abort(c, http.StatusNotFound, errors.New("history is disabled"))
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abort(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) historyRun(c *gin.Context) {
	if s.store == nil {
		abort(c, http.StatusNotFound, errors.New("history is disabled"))
		return
	}

	run, err := s.store.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		abort(c, http.StatusNotFound, err)
		return
	case err != nil:
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, run)
}
