package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/ats"
	"github.com/jonathan/resume-aligner/internal/optimizer"
	"github.com/jonathan/resume-aligner/internal/parsing"
	"github.com/jonathan/resume-aligner/internal/schemas"
	"github.com/jonathan/resume-aligner/internal/types"
	schemafiles "github.com/jonathan/resume-aligner/schemas"
)

// ResumePayload is the body of routes that take only a resume
type ResumePayload struct {
	Resume json.RawMessage `json:"resume"`
}

// AlignPayload is the body of routes that take a resume and a job description.
// Settings is accepted from existing clients and validated, but no route's
// output depends on it.
type AlignPayload struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription json.RawMessage `json:"job_description"`
	Settings       *types.Settings `json:"settings,omitempty"`
}

// AlignResponse is returned by /align
type AlignResponse struct {
	Alignment *types.Alignment `json:"alignment"`
	Coverage  types.Coverage   `json:"coverage"`
}

// OptimizeResponse is returned by /optimize
type OptimizeResponse struct {
	Edits          []types.EditItem `json:"edits"`
	TailoredResume *types.Resume    `json:"tailored_resume"`
	Alignment      *types.Alignment `json:"alignment"`
	Coverage       types.Coverage   `json:"coverage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"ok": true, "service": s.cfg.AppName}
	if p, ok := s.profiles.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("database ping failed", "error", err)
			resp["database"] = "unavailable"
		} else {
			resp["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		s.writeError(w, r, requestError("file", err))
		return
	}

	filename, content, err := formFile(r, "file")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if filename == "" {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "is required"})
		return
	}

	resume, err := parsing.ParseResume(filename, content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": resume})
}

// handleParseJD accepts a multipart upload, pasted text or a posting URL.
// A URL that cannot be fetched yields an empty job description.
func (s *Server) handleParseJD(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.writeError(w, r, requestError("form", err))
		return
	}

	src := parsing.JobSource{
		URL:  r.FormValue("url"),
		Text: r.FormValue("text"),
	}
	if r.MultipartForm != nil {
		filename, content, err := formFile(r, "file")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		src.Filename, src.Content = filename, content
	}
	if src.URL != "" {
		if err := s.validate.Var(src.URL, "url"); err != nil {
			s.writeError(w, r, &ErrValidation{Field: "url", Message: "must be an absolute URL"})
			return
		}
	}

	jd, err := s.jobs.Parse(r.Context(), src)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job_description": jd})
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	resume, jd, err := s.decodeAlignPayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	a, cov, err := s.align(r.Context(), resume, jd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AlignResponse{Alignment: a, Coverage: cov})
}

func (s *Server) handleATSCheck(w http.ResponseWriter, r *http.Request) {
	resume, err := s.decodeResumePayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"ats_checklist": ats.Check(resume)})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	resume, jd, err := s.decodeAlignPayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	a, cov, err := s.align(r.Context(), resume, jd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, OptimizeResponse{
		Edits:          optimizer.RewriteBullets(resume),
		TailoredResume: optimizer.BuildTailoredResume(resume, jd),
		Alignment:      a,
		Coverage:       cov,
	})
}

// align scores resume against the job's term sets and derives coverage
func (s *Server) align(ctx context.Context, resume *types.Resume, jd *types.JobDescription) (*types.Alignment, types.Coverage, error) {
	a, err := s.engine.Compute(ctx, resume.RawText, jd.TermSets())
	if err != nil {
		return nil, types.Coverage{}, err
	}
	cov := alignment.CoverageScores(a, jd.Entities.RequiredSkills, jd.Entities.PreferredSkills)
	return a, cov, nil
}

// decodeJSON reads a size-limited JSON body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return requestError("body", err)
	}
	return nil
}

func (s *Server) decodeResumePayload(w http.ResponseWriter, r *http.Request) (*types.Resume, error) {
	var payload ResumePayload
	if err := s.decodeJSON(w, r, &payload); err != nil {
		return nil, err
	}
	return decodeResume(payload.Resume)
}

func (s *Server) decodeAlignPayload(w http.ResponseWriter, r *http.Request) (*types.Resume, *types.JobDescription, error) {
	var payload AlignPayload
	if err := s.decodeJSON(w, r, &payload); err != nil {
		return nil, nil, err
	}
	resume, err := decodeResume(payload.Resume)
	if err != nil {
		return nil, nil, err
	}
	jd, err := decodeJobDescription(payload.JobDescription)
	if err != nil {
		return nil, nil, err
	}
	if payload.Settings != nil {
		if err := s.validateStruct(payload.Settings); err != nil {
			return nil, nil, err
		}
	}
	return resume, jd, nil
}

// decodeResume validates raw against the resume schema and decodes it over
// an empty resume, so absent collections stay empty rather than null
func decodeResume(raw json.RawMessage) (*types.Resume, error) {
	if err := checkDocument("resume", schemafiles.Resume, raw); err != nil {
		return nil, err
	}
	resume := types.NewResume()
	if err := json.Unmarshal(raw, resume); err != nil {
		return nil, &ErrValidation{Field: "resume", Message: err.Error()}
	}
	return resume, nil
}

func decodeJobDescription(raw json.RawMessage) (*types.JobDescription, error) {
	if err := checkDocument("job_description", schemafiles.JobDescription, raw); err != nil {
		return nil, err
	}
	jd := types.NewJobDescription()
	if err := json.Unmarshal(raw, jd); err != nil {
		return nil, &ErrValidation{Field: "job_description", Message: err.Error()}
	}
	jd.Entities = jd.Entities.WithEmptyLists()
	return jd, nil
}

func checkDocument(field, schema string, raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return &ErrValidation{Field: field, Message: "is required"}
	}
	if err := schemas.Validate(schema, raw); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}

// validateStruct runs struct tag validation and reports the first failure
func (s *Server) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// formFile reads an optional upload. A missing field yields an empty filename.
func formFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, requestError(field, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, requestError(field, err)
	}
	return header.Filename, content, nil
}

// requestError turns a body or form read failure into a client error,
// keeping the size-limit error intact for HTTPStatus
func requestError(field string, err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return &ErrValidation{Field: field, Message: err.Error()}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status. Server-side failures are logged and
// reported without detail; schema violations carry their field list.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, http.StatusText(status))
		return
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":   err.Error(),
			"details": schemaErr.Errors,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}
