package server

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
)

const defaultHours = 24

func (s *Server) rootHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{"message": "Welcome to CFP Tracker API"})
}

// healthHandler reports liveness and the completion time of the last successful ingestion round
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := rest.JSON{"status": "healthy", "version": s.version}
	last, ok, err := s.scheduler.LastIngestion(r.Context())
	if err != nil {
		lgr.Printf("[WARN] can't get last ingestion time: %v", err)
	}
	if ok {
		resp["last_ingestion"] = last.UTC().Format(time.RFC3339)
	}
	rest.RenderJSON(w, resp)
}

// ingestHandler queues an ingestion round and returns without waiting for it
func (s *Server) ingestHandler(w http.ResponseWriter, _ *http.Request) {
	msg := "CFP ingestion process started"
	if !s.scheduler.TriggerIngestion() {
		msg = "CFP ingestion process already queued, request joined it"
	}
	rest.RenderJSON(w, rest.JSON{
		"status":   "success",
		"message":  msg,
		"adapters": s.adapters.Names(),
	})
}

func (s *Server) adaptersHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, s.adapters.Names())
}

// lastFetchHandler returns the last completed fetch of the adapter, null if it never fetched
func (s *Server) lastFetchHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(s.adapters.Names(), name) {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound,
			fmt.Errorf("unknown adapter %q", name), fmt.Sprintf("adapter '%s' not found", name))
		return
	}

	resp := rest.JSON{"adapter": name, "last_fetch": nil}
	if ts, ok := s.adapters.LastFetchTime(name); ok {
		resp["last_fetch"] = ts.UTC().Format(time.RFC3339)
	}
	rest.RenderJSON(w, resp)
}

// rssFeedHandler serves CFPs stored within the last "hours" hours as RSS, 24 by default
func (s *Server) rssFeedHandler(w http.ResponseWriter, r *http.Request) {
	hours, err := hoursParam(r)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "hours must be a positive integer")
		return
	}

	cfps, err := s.cfps.ListCreatedSince(r.Context(), time.Now().UTC().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to get CFPs")
		return
	}

	rss, err := s.generator.GenerateRSS(cfps, hours)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to generate RSS")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// notifyHandler sends notifications about CFPs stored within the last "hours" hours
func (s *Server) notifyHandler(w http.ResponseWriter, r *http.Request) {
	hours, err := hoursParam(r)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "hours must be a positive integer")
		return
	}

	res, err := s.scheduler.Notify(r.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to send notifications")
		return
	}

	rest.RenderJSON(w, rest.JSON{
		"status":  "success",
		"message": fmt.Sprintf("Notifications sent for CFPs added in the last %d hours", hours),
		"found":   res.Found,
		"sent":    res.Sent,
	})
}

// hoursParam returns the "hours" query parameter, defaultHours if not set
func hoursParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("hours")
	if v == "" {
		return defaultHours, nil
	}
	h, err := strconv.Atoi(v)
	if err != nil || h <= 0 {
		return 0, fmt.Errorf("invalid hours %q", v)
	}
	return h, nil
}
