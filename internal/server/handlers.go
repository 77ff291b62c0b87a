package server

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/chazara-go/pkg/chazara"
	"github.com/ukaji3/chazara-go/pkg/chazara/corpus"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// tractates lists every gemara tractate with its last daf.
func (s *Server) tractates(c *gin.Context) {
	c.JSON(http.StatusOK, s.gen.Catalog().Tractates())
}

type corpusResponse struct {
	Corpus    corpus.Kind    `json:"corpus"`
	UnitLabel string         `json:"unitLabel"`
	SubUnits  bool           `json:"subUnits"`
	Entries   []corpus.Entry `json:"entries"`
}

func (s *Server) corpus(c *gin.Context) {
	kind, err := corpus.ParseKind(c.Param("corpus"))
	if err != nil {
		c.JSON(http.StatusNotFound, chazara.ErrorPayload{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, corpusResponse{
		Corpus:    kind,
		UnitLabel: kind.UnitLabel(),
		SubUnits:  kind.SubUnits(),
		Entries:   s.gen.Catalog().Entries(kind),
	})
}

// createChart generates a chart. A non-empty format overrides the request body.
func (s *Server) createChart(format models.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			c.JSON(status, chazara.ErrorPayload{Error: "Invalid request body", Details: err.Error()})
			return
		}
		if format != "" {
			req.Format = format
		}

		artifact, err := s.gen.Generate(c.Request.Context(), req)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
		c.Header("Content-Length", strconv.Itoa(len(artifact.Data)))
		c.Data(http.StatusOK, artifact.MIMEType, artifact.Data)
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if chazara.IsValidation(err) {
		status = http.StatusBadRequest
	}
	log := s.log.With("request_id", requestID(c))
	if status >= 500 {
		log.Error("chart generation failed", "error", err)
	} else {
		log.Warn("chart request rejected", "error", err)
	}
	c.JSON(status, chazara.Payload(err))
}
