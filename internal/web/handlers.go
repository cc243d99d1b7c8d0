package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"RangeScope/internal/collector"
	"RangeScope/internal/model"
	"RangeScope/internal/scheduler"

	"github.com/sirupsen/logrus"
)

const maxFormBytes = 16 << 10

func (s *Server) defaultForm() formValues {
	form := formValues{Period: "1mo", Interval: "1d"}
	if s.cfg != nil && s.cfg.Engine.DefaultTick > 0 {
		form.TickSize = strconv.FormatFloat(s.cfg.Engine.DefaultTick, 'f', -1, 64)
	}
	return form
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, newPage(s.defaultForm()))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.requestLogger(r).WithError(err).Warn("parse form")
		page := newPage(s.defaultForm())
		page.Error = MsgInvalidParameter
		s.renderPage(w, r, http.StatusBadRequest, page)
		return
	}

	form := formValues{
		Ticker:   strings.TrimSpace(r.PostFormValue("ticker")),
		Period:   strings.TrimSpace(r.PostFormValue("period")),
		Interval: strings.TrimSpace(r.PostFormValue("interval")),
		TickSize: strings.TrimSpace(r.PostFormValue("tick_size")),
	}
	page := newPage(form)

	rep, err := s.run(r, form)
	if err != nil {
		page.Error = UserMessage(err)
		s.renderPage(w, r, statusCode(err), page)
		return
	}
	page.Result = newResultView(rep)
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) handleVolatilityAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := formValues{
		Ticker:   strings.TrimSpace(q.Get("ticker")),
		Period:   strings.TrimSpace(q.Get("period")),
		Interval: strings.TrimSpace(q.Get("interval")),
		TickSize: strings.TrimSpace(q.Get("tick_size")),
	}
	def := s.defaultForm()
	if form.Period == "" {
		form.Period = def.Period
	}
	if form.Interval == "" {
		form.Interval = def.Interval
	}
	if form.TickSize == "" {
		form.TickSize = def.TickSize
	}

	rep, err := s.run(r, form)
	if err != nil {
		s.writeJSON(w, r, statusCode(err), apiError{Error: UserMessage(err), RequestID: RequestID(r.Context())})
		return
	}
	s.writeJSON(w, r, http.StatusOK, newAPIReport(rep))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}
	if s.health != nil {
		st := s.health.Status()
		health["probe"] = st
		if st.State == scheduler.StateDown {
			health["status"] = "degraded"
		}
	}
	s.writeJSON(w, r, http.StatusOK, health)
}

// run parses the submitted values and runs the query. Errors are logged here
// with the request id and returned for mapping to a user message.
func (s *Server) run(r *http.Request, form formValues) (*model.VolatilityReport, error) {
	log := s.requestLogger(r).WithFields(logrus.Fields{
		"symbol":    form.Ticker,
		"period":    form.Period,
		"interval":  form.Interval,
		"tick_size": form.TickSize,
	})

	query, err := collector.ParseQuery(form.Ticker, form.Period, form.Interval, form.TickSize)
	if err != nil {
		log.WithError(err).Info("rejected query")
		return nil, err
	}
	rep, err := s.analyzer.Collect(r.Context(), query)
	if err != nil {
		log.WithError(err).Warn("volatility query failed")
		return nil, err
	}
	return rep, nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		s.requestLogger(r).WithError(err).Error("render template")
		http.Error(w, MsgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.requestLogger(r).WithError(err).Error("encode response")
		http.Error(w, MsgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
