package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/epiclabs-io/elastic"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/generators"
	"github.com/fernandosanchezjr/goscrambler/recovery"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

var InvalidParameter = errors.New("invalid parameter")

type SequenceResponse struct {
	CInit  int64  `json:"cInit"`
	Length int    `json:"length"`
	Bits   string `json:"bits"`
}

type CInitResponse struct {
	ScramblingId int        `json:"scramblingId"`
	Slot         cinit.Slot `json:"slot"`
	CInit        int64      `json:"cInit"`
}

type CandidatesResponse struct {
	ObservedBits int              `json:"observedBits"`
	Matches      []recovery.Match `json:"matches"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, generators.InvalidLength),
		errors.Is(err, cinit.InvalidScramblingId),
		errors.Is(err, recovery.InvalidTail),
		errors.Is(err, utils.InvalidBit),
		errors.Is(err, InvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, recovery.CacheUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error writing response")
	}
}

func writeError(w http.ResponseWriter, request *http.Request, err error) {
	status := statusFor(err)
	log.WithFields(log.Fields{
		"path":   request.URL,
		"status": status,
	}).WithError(err).Warn("Request failed")
	writeJSON(w, status, &ErrorResponse{Error: err.Error()})
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", InvalidParameter, err)
}

func (s *Service) GetSequence(w http.ResponseWriter, request *http.Request, ps httprouter.Params) {
	startTime := time.Now()
	var cInit int64
	if err := elastic.Set(&cInit, ps.ByName("cinit")); err != nil {
		writeError(w, request, badRequest(err))
		return
	}
	params, err := ParseSequenceParams(request.URL.Query())
	if err != nil {
		writeError(w, request, badRequest(err))
		return
	}
	if params.Length > MaxSequenceLength {
		writeError(w, request, fmt.Errorf("%w: %d exceeds %d", generators.InvalidLength, params.Length, MaxSequenceLength))
		return
	}
	key := fmt.Sprintf("%d/%d", cInit, params.Length)
	if cached, found := s.sequences.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}
	bits, err := generators.Generate(params.Length, cInit)
	if err != nil {
		writeError(w, request, err)
		return
	}
	response := &SequenceResponse{CInit: cInit, Length: params.Length, Bits: bits.String()}
	s.sequences.SetWithTTL(key, response, s.cfg.Server.SequenceTTL)
	writeJSON(w, http.StatusOK, response)
	log.WithFields(log.Fields{
		"elapsedTime": time.Since(startTime),
		"path":        request.URL,
	}).Debug("Sequence request")
}

func (s *Service) GetCInit(w http.ResponseWriter, request *http.Request, ps httprouter.Params) {
	var id int
	if err := elastic.Set(&id, ps.ByName("id")); err != nil {
		writeError(w, request, badRequest(err))
		return
	}
	slot, err := ParseSlotParams(request.URL.Query(), s.cfg.Slot)
	if err != nil {
		writeError(w, request, badRequest(err))
		return
	}
	cInit, err := cinit.Compute(id, slot)
	if err != nil {
		writeError(w, request, err)
		return
	}
	writeJSON(w, http.StatusOK, &CInitResponse{ScramblingId: id, Slot: slot, CInit: cInit})
}

func (s *Service) GetCandidates(w http.ResponseWriter, request *http.Request, ps httprouter.Params) {
	startTime := time.Now()
	tail, err := utils.ParseBits(ps.ByName("bits"))
	if err != nil {
		writeError(w, request, err)
		return
	}
	matches, err := s.Engine().FindMatches(tail)
	if err != nil {
		writeError(w, request, err)
		return
	}
	if matches == nil {
		matches = []recovery.Match{}
	}
	writeJSON(w, http.StatusOK, &CandidatesResponse{ObservedBits: len(tail), Matches: matches})
	log.WithFields(log.Fields{
		"elapsedTime":  time.Since(startTime),
		"observedBits": len(tail),
		"matches":      len(matches),
	}).Println("Candidates request")
}

func (s *Service) GetReport(w http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	params, err := ParseReportParams(request.URL.Query(), s.cfg.Report.MaxBits, s.cfg.Report.Seed)
	if err != nil {
		writeError(w, request, badRequest(err))
		return
	}
	report, err := recovery.NewExperiment(s.Engine(), params.MaxBits, params.Resample, params.Seed).Run()
	if err != nil {
		writeError(w, request, err)
		return
	}
	switch params.Format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := report.WriteTo(w); err != nil {
			log.WithError(err).Error("Error writing report")
		}
	case "json":
		writeJSON(w, http.StatusOK, report)
	default:
		if err := recovery.BuildChart(report).Render(w); err != nil {
			log.WithError(err).Error("Error rendering chart")
		}
	}
}
