package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-aligner/internal/db"
	"github.com/jonathan/resume-aligner/internal/storage"
)

// ProfileFile is where /profile/save writes when no database is configured
const ProfileFile = "profile.json"

// MaxListLimit caps the limit query parameter of GET /profiles
const MaxListLimit = 200

// profileQuery holds the query parameters of the profile routes
type profileQuery struct {
	Kind  string `json:"kind" validate:"omitempty,oneof=resume job_description profile"`
	Name  string `json:"name" validate:"max=200"`
	Limit int    `json:"limit" validate:"gte=0,lte=200"`
}

// SaveProfileResponse is returned by /profile/save
type SaveProfileResponse struct {
	ID         string `json:"id,omitempty"`
	ProfileURL string `json:"profile_url"`
}

// handleSaveProfile stores an arbitrary JSON object. With a database the
// payload becomes a profiles row (kind and name from the query string);
// without one it is written to profile.json in the file store.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := s.decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}
	if payload == nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "must be a JSON object"})
		return
	}

	q := profileQuery{Kind: r.URL.Query().Get("kind"), Name: r.URL.Query().Get("name")}
	if err := s.validateStruct(&q); err != nil {
		s.writeError(w, r, err)
		return
	}

	if s.profiles == nil {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		url, err := s.store.Put(r.Context(), ProfileFile, storage.ContentType(ProfileFile), data)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, SaveProfileResponse{ProfileURL: url})
		return
	}

	kind := q.Kind
	if kind == "" {
		kind = db.KindProfile
	}
	p, err := s.profiles.SaveProfile(r.Context(), kind, q.Name, payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, SaveProfileResponse{
		ID:         p.ID.String(),
		ProfileURL: "/profiles/" + p.ID.String(),
	})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "profile database"})
		return
	}

	q := profileQuery{Kind: r.URL.Query().Get("kind")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must be an integer"})
			return
		}
		q.Limit = limit
	}
	if err := s.validateStruct(&q); err != nil {
		s.writeError(w, r, err)
		return
	}

	profiles, err := s.profiles.ListProfiles(r.Context(), q.Kind, q.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []db.Profile{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"profiles": profiles, "count": len(profiles)})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.profileID(w, r)
	if !ok {
		return
	}
	p, err := s.profiles.GetProfile(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.profileID(w, r)
	if !ok {
		return
	}
	if err := s.profiles.DeleteProfile(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// profileID parses the {id} path value, writing the error response itself
func (s *Server) profileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.profiles == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "profile database"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
