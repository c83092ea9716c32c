package recovery

import (
	"bufio"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
	"io"
	"time"
)

// Result is one report line: how many identifiers contain the last
// ObservedBits bits of the truth identifier's sequence.
type Result struct {
	ObservedBits int `json:"observedBits"`
	Matches      int `json:"matches"`
	Truth        int `json:"truth"`
}

type Report struct {
	Id        ulid.ULID     `json:"id"`
	CacheBits int           `json:"cacheBits"`
	Seed      uint64        `json:"seed"`
	Resample  bool          `json:"resample"`
	Results   []Result      `json:"results"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Unique returns the smallest observed bit count with a single match, or 0.
func (r *Report) Unique() int {
	for _, result := range r.Results {
		if result.Matches == 1 {
			return result.ObservedBits
		}
	}
	return 0
}

// WriteTo writes "#" header lines followed by one
// "observed_bit_count number_of_matching_candidates" line per result.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	write := func(format string, args ...interface{}) error {
		n, err := fmt.Fprintf(bw, format, args...)
		total += int64(n)
		return err
	}
	if err := write("# run %s\n# bits %d\n# seed %d\n", r.Id, r.CacheBits, r.Seed); err != nil {
		return total, err
	}
	if !r.Resample && len(r.Results) > 0 {
		if err := write("# truth %d\n", r.Results[0].Truth); err != nil {
			return total, err
		}
	}
	for _, result := range r.Results {
		if err := write("%d %d\n", result.ObservedBits, result.Matches); err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// Experiment measures identifiability: for each observed bit count it
// picks a truth identifier and counts the candidates matching its tail.
// Unless Resample is set one truth is used for every count.
type Experiment struct {
	Engine   *Engine
	MaxBits  int
	Resample bool
	Source   *utils.RandomSource
}

func NewExperiment(engine *Engine, maxBits int, resample bool, seed uint64) *Experiment {
	if maxBits <= 0 {
		maxBits = MaxTailBits
	}
	return &Experiment{
		Engine:   engine,
		MaxBits:  maxBits,
		Resample: resample,
		Source:   utils.NewRandomSource(seed),
	}
}

func (ex *Experiment) Run() (*Report, error) {
	if err := ex.Engine.ready(); err != nil {
		return nil, err
	}
	if err := checkTail(ex.MaxBits, ex.Engine.cache.Bits); err != nil {
		return nil, err
	}
	start := time.Now()
	report := &Report{
		Id:        ulid.Make(),
		CacheBits: ex.Engine.cache.Bits,
		Seed:      ex.Source.Seed,
		Resample:  ex.Resample,
	}
	var err error
	if ex.Resample {
		err = ex.runResampled(report)
	} else {
		err = ex.runFixed(report)
	}
	if err != nil {
		return nil, err
	}
	report.Elapsed = time.Since(start)
	log.WithFields(log.Fields{
		"run":     report.Id,
		"unique":  report.Unique(),
		"elapsed": report.Elapsed.Round(time.Millisecond),
	}).Info("Identifiability report")
	return report, nil
}

func (ex *Experiment) runFixed(report *Report) error {
	truth := ex.Source.Intn(cinit.IdCount)
	counts, err := ex.Engine.CountBySuffix(truth, ex.MaxBits)
	if err != nil {
		return err
	}
	for i, count := range counts {
		report.Results = append(report.Results, Result{ObservedBits: i + 1, Matches: count, Truth: truth})
	}
	return nil
}

func (ex *Experiment) runResampled(report *Report) error {
	for n := 1; n <= ex.MaxBits; n++ {
		truth := ex.Source.Intn(cinit.IdCount)
		entry, err := ex.Engine.cache.Entry(truth)
		if err != nil {
			return err
		}
		candidates, err := ex.Engine.FindCandidates(entry.Tail(n))
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"bits":    n,
			"truth":   truth,
			"matches": utils.Count(len(candidates)),
		}).Debug("Observed bits")
		report.Results = append(report.Results, Result{ObservedBits: n, Matches: len(candidates), Truth: truth})
	}
	return nil
}
