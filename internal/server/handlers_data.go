package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.db.LoadSnapshot()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	category, err := store.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var data any
	switch category {
	case store.CategoryOutcome:
		data, err = s.db.FetchOutcomes()
	case store.CategoryLicensingExam:
		data, err = s.db.FetchLicensingExams()
	case store.CategoryCourseQuality:
		data, err = s.db.FetchCourseQuality()
	case store.CategoryTrend:
		data, err = s.db.FetchTrends()
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, data)
}

// handlePutData replaces a whole category. The actor comes from the
// session and ends up in the audit trail.
func (s *Server) handlePutData(w http.ResponseWriter, r *http.Request) {
	category, err := store.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	sess, ok := sessionFrom(r.Context())
	if !ok {
		respondErr(w, r, errMissingSession)
		return
	}

	switch category {
	case store.CategoryOutcome:
		var records []engine.OutcomeRecord
		if err = render.DecodeJSON(r.Body, &records); err == nil {
			err = s.db.ReplaceOutcomes(records, sess.Email)
		}
	case store.CategoryLicensingExam:
		var records []engine.LicensingExamRecord
		if err = render.DecodeJSON(r.Body, &records); err == nil {
			err = s.db.ReplaceLicensingExams(records, sess.Email)
		}
	case store.CategoryCourseQuality:
		var records []engine.CourseQualityRecord
		if err = render.DecodeJSON(r.Body, &records); err == nil {
			err = s.db.ReplaceCourseQuality(records, sess.Email)
		}
	case store.CategoryTrend:
		var records []engine.TrendRecord
		if err = render.DecodeJSON(r.Body, &records); err == nil {
			err = s.db.ReplaceTrends(records, sess.Email)
		}
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"message": "saved"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	snap, err := s.db.LoadSnapshot()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	result, err := s.evaluator.Evaluate(snap)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondErr(w, r, &auth.ValidationError{Field: "limit", Reason: "must be a positive integer"})
			return
		}
		limit = n
	}
	entries, err := s.db.RecentAudit(limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, entries)
}
