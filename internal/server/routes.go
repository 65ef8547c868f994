package server

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"uxguard/internal/compose"
	"uxguard/internal/knowledge"
	"uxguard/internal/regulatory"
	"uxguard/internal/report"
	"uxguard/internal/retrieval"
	"uxguard/internal/telemetry"
)

type queryRequest struct {
	Query      string `json:"query"`
	Frameworks bool   `json:"frameworks"`
}

type referencePayload struct {
	Citation string `json:"citation"`
	Link     string `json:"link,omitempty"`
}

type annotationPayload struct {
	Framework string `json:"framework"`
	Ref       string `json:"ref"`
	Note      string `json:"note"`
}

type matchPayload struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Phase         string              `json:"phase"`
	Priority      string              `json:"priority"`
	Score         float64             `json:"score"`
	Justification string              `json:"justification,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
	Mitigations   []string            `json:"mitigations,omitempty"`
	Evidence      []string            `json:"evidence,omitempty"`
	References    []referencePayload  `json:"references,omitempty"`
	Annotations   []annotationPayload `json:"annotations,omitempty"`
	ActNote       string              `json:"act_note,omitempty"`
}

func (s *Server) setupRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(indexHTML)
	})
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/query", s.handleQuery)
	api.Get("/phase/:phase", s.handlePhase)
	api.Post("/export", s.handleExport)
	api.Get("/log", s.handleLog)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "success",
		"name":     s.cfg.Name,
		"version":  s.cfg.Version,
		"entries":  s.store.Len(),
		"embedded": s.store.IsEmbedded(),
		"composer": s.composer.Enabled(),
	})
}

func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.Warnf("bad query payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request payload",
		})
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Query must not be empty",
		})
	}

	s.telemetry.Note(query, telemetry.KindQuery)

	res, err := s.retriever.Retrieve(query)
	if err != nil {
		return s.retrieveError(c, query, err)
	}

	ans := s.composer.ComposeOrFallback(c.UserContext(), res)
	payload := s.answerPayload(ans)
	tier := regulatory.ClassifyQuery(query)
	payload["act"] = fiber.Map{"tag": tier.Tag, "note": tier.Note}
	if req.Frameworks {
		payload["frameworks"] = regulatory.FrameworksNote()
	}
	if regulatory.OutOfScope(query) {
		payload["warning"] = regulatory.ScopeWarning
	}
	return c.JSON(payload)
}

// handlePhase serves the preset listing for one lifecycle phase. Presets
// are deterministic and curated, so no composition happens here.
func (s *Server) handlePhase(c *fiber.Ctx) error {
	phase, ok := knowledge.ParsePhase(c.Params("phase"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": fmt.Sprintf("unknown phase %q (valid: %v)", c.Params("phase"), knowledge.Phases),
		})
	}

	s.telemetry.Note(string(phase), telemetry.KindPhase)

	res, err := s.retriever.RetrievePhase(phase)
	if err != nil {
		return s.retrieveError(c, string(phase), err)
	}
	return c.JSON(s.answerPayload(compose.Fallback(res)))
}

// handleExport re-runs the lookup and streams the curated entries as a PDF.
// Export never waits on the model.
func (s *Server) handleExport(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request payload",
		})
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Query must not be empty",
		})
	}

	res, err := s.retriever.Retrieve(query)
	if err != nil {
		return s.retrieveError(c, query, err)
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, compose.Fallback(res)); err != nil {
		s.logger.Errorf("export failed for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "PDF export failed",
		})
	}

	filename := fmt.Sprintf("uxguard_%s.pdf", time.Now().UTC().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (s *Server) handleLog(c *fiber.Ctx) error {
	if s.telemetry == nil {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "telemetry disabled",
			"records": []fiber.Map{},
		})
	}

	records, err := s.telemetry.Recent(c.QueryInt("n", 20))
	if err != nil {
		s.logger.Errorf("failed to read query log: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "failed to read query log",
		})
	}

	items := make([]fiber.Map, 0, len(records))
	for _, r := range records {
		items = append(items, fiber.Map{
			"id":    r.ID,
			"query": r.Query,
			"kind":  r.Kind,
			"at":    r.At.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"records": items,
	})
}

// retrieveError maps pipeline errors onto HTTP responses. No match is the
// expected miss case and always actionable for the user.
func (s *Server) retrieveError(c *fiber.Ctx, query string, err error) error {
	var nomatch *retrieval.NoMatchError
	if errors.As(err, &nomatch) {
		s.logger.Infof("no matches for %q", query)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "No matching risks found. Try rephrasing, or browse by phase.",
		})
	}
	s.logger.Errorf("retrieve failed for %q: %v", query, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "lookup failed",
	})
}

func (s *Server) answerPayload(ans *compose.FormattedAnswer) fiber.Map {
	res := ans.Result
	matches := make([]matchPayload, 0, len(res.Matches))
	for _, m := range res.Matches {
		matches = append(matches, toMatchPayload(m))
	}

	payload := fiber.Map{
		"status":     "success",
		"query":      ans.Query,
		"composed":   ans.Composed,
		"markdown":   ans.Markdown,
		"matches":    matches,
		"disclaimer": regulatory.Disclaimer,
	}
	if res.Phase != "" {
		payload["phase"] = res.Phase.Display()
	}
	return payload
}

func toMatchPayload(m retrieval.Match) matchPayload {
	p := matchPayload{
		ID:            m.Risk.ID,
		Title:         m.Risk.Title,
		Phase:         m.Risk.Phase.Display(),
		Priority:      string(m.Risk.Priority),
		Score:         m.Score,
		Justification: m.Risk.Justification,
		Tags:          m.Risk.Tags,
		Mitigations:   m.Risk.Mitigations,
		Evidence:      m.Risk.Evidence,
		ActNote:       m.Risk.AIActNote,
	}
	for _, ref := range m.References {
		p.References = append(p.References, referencePayload{Citation: ref.Citation(), Link: ref.Link()})
	}
	for _, a := range m.Annotations {
		p.Annotations = append(p.Annotations, annotationPayload{Framework: string(a.Framework), Ref: a.Ref, Note: a.Note})
	}
	return p
}
