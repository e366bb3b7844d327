package server

import (
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-aligner/internal/ats"
	"github.com/jonathan/resume-aligner/internal/optimizer"
	"github.com/jonathan/resume-aligner/internal/report"
	"github.com/jonathan/resume-aligner/internal/storage"
	"github.com/jonathan/resume-aligner/internal/types"
)

// CoverLetterFile is the stored name of the generated cover letter
const CoverLetterFile = "cover_letter.txt"

// ReportResponse is returned by /report
type ReportResponse struct {
	HTMLURL string       `json:"html_url"`
	Report  types.Report `json:"report"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resume, err := s.decodeResumePayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.exporter.Export(r.Context(), resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleReport scores the pair, runs the ATS checklist and drafts bullet
// rewrites concurrently, then stores the rendered HTML report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	resume, jd, err := s.decodeAlignPayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		a      *types.Alignment
		cov    types.Coverage
		checks []types.ATSCheck
		edits  []types.EditItem
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		a, cov, err = s.align(ctx, resume, jd)
		return err
	})
	g.Go(func() error {
		checks = ats.Check(resume)
		return nil
	})
	g.Go(func() error {
		edits = optimizer.RewriteBullets(resume)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}

	generated := s.now().UTC()
	rep := report.Build(report.Input{
		Resume:    resume,
		Alignment: a,
		Coverage:  cov,
		ATS:       checks,
		Edits:     edits,
	})
	html, err := report.RenderHTML(report.Document{Report: rep, Alignment: a, GeneratedAt: generated})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("report_%d.html", generated.Unix())
	url, err := s.store.Put(r.Context(), name, storage.ContentType(name), []byte(html))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ReportResponse{HTMLURL: url, Report: rep})
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	resume, jd, err := s.decodeAlignPayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	letter, err := optimizer.CoverLetter(resume, jd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url, err := s.store.Put(r.Context(), CoverLetterFile, storage.ContentType(CoverLetterFile), []byte(letter))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"txt_url": url})
}

// handleFile serves a stored artifact by name
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := storage.ValidateName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", storage.ContentType(name))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write file response", "name", name, "error", err)
	}
}
