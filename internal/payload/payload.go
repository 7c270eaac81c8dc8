// Package payload decodes pipeline payloads into immutable snapshots.
package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/waabox/stageview/internal/domain"
)

// ErrNoStages is returned for payloads that describe no stage at all.
var ErrNoStages = errors.New("payload: no stages")

// Format is the encoding of a payload.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFor picks the format from a file extension. Anything that is not
// .yml or .yaml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML
	default:
		return JSON
	}
}

// Decoder turns raw payloads into domain.Pipeline values.
type Decoder struct {
	// Now is used to turn timestamp stage times into ages.
	Now func() time.Time
	// TrimPrefixes are stripped from job names of flat job payloads.
	TrimPrefixes []string
}

// NewDecoder returns a Decoder using the wall clock.
func NewDecoder() *Decoder {
	return &Decoder{Now: time.Now}
}

// Load reads and decodes the payload at path. "-" reads JSON from stdin.
func (d *Decoder) Load(path string) (domain.Pipeline, error) {
	if path == "-" {
		p, err := d.Decode(os.Stdin, JSON)
		return p, errors.Wrap(err, "decoding stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Pipeline{}, errors.Wrap(err, "opening payload")
	}
	defer f.Close()
	p, err := d.Decode(f, FormatFor(path))
	return p, errors.Wrapf(err, "decoding %s", path)
}

// Decode reads one payload from r.
func (d *Decoder) Decode(r io.Reader, format Format) (domain.Pipeline, error) {
	var raw rawPipeline
	var err error
	switch format {
	case YAML:
		err = yaml.NewDecoder(r).Decode(&raw)
	default:
		err = json.NewDecoder(r).Decode(&raw)
	}
	if err != nil {
		return domain.Pipeline{}, err
	}
	p := d.toPipeline(raw)
	if len(p.Stages) == 0 {
		return domain.Pipeline{}, ErrNoStages
	}
	return p, nil
}

// rawPipeline is the wire shape of a payload.
type rawPipeline struct {
	Repository struct {
		Owner string `json:"owner" yaml:"owner"`
		Name  string `json:"name" yaml:"name"`
	} `json:"repository" yaml:"repository"`
	Ref    string     `json:"ref" yaml:"ref"`
	Stages []rawStage `json:"stages" yaml:"stages"`
	// Jobs is the flat form: every job names its stage.
	Jobs []rawJob `json:"jobs" yaml:"jobs"`
}

type rawStage struct {
	Name     string      `json:"name" yaml:"name"`
	State    interface{} `json:"state" yaml:"state"`
	Time     string      `json:"time" yaml:"time"`
	Statuses []rawStatus `json:"statuses" yaml:"statuses"`
	// Jobs is the older name of Statuses.
	Jobs []rawStatus `json:"jobs" yaml:"jobs"`
}

type rawStatus struct {
	Name  string      `json:"name" yaml:"name"`
	State interface{} `json:"state" yaml:"state"`
}

type rawJob struct {
	Name  string      `json:"name" yaml:"name"`
	Stage string      `json:"stage" yaml:"stage"`
	State interface{} `json:"state" yaml:"state"`
}

func (d *Decoder) toPipeline(raw rawPipeline) domain.Pipeline {
	p := domain.Pipeline{
		Repository: domain.Repository{Owner: raw.Repository.Owner, Name: raw.Repository.Name},
		Ref:        raw.Ref,
	}
	if len(raw.Stages) == 0 && len(raw.Jobs) > 0 {
		jobs := make([]domain.Job, len(raw.Jobs))
		for i, j := range raw.Jobs {
			jobs[i] = domain.Job{Name: j.Name, Stage: j.Stage, State: parseState(j.State)}
		}
		p.Stages = domain.GroupJobs(jobs, d.TrimPrefixes)
		return p
	}
	p.Stages = make([]domain.Stage, len(raw.Stages))
	for i, s := range raw.Stages {
		statuses := s.Statuses
		if len(statuses) == 0 {
			statuses = s.Jobs
		}
		stage := domain.Stage{
			Name:     s.Name,
			State:    parseState(s.State),
			Time:     d.stageTime(s.Time),
			Statuses: make([]domain.Status, len(statuses)),
		}
		for j, st := range statuses {
			stage.Statuses[j] = domain.Status{Name: st.Name, State: parseState(st.State)}
		}
		p.Stages[i] = stage
	}
	return p
}

// parseState accepts only strings; numbers, booleans and nulls are unknown.
func parseState(v interface{}) domain.State {
	s, ok := v.(string)
	if !ok {
		return domain.StateUnknown
	}
	return domain.ParseState(s)
}

// stageTime renders timestamps as ages and leaves free-form labels alone.
func (d *Decoder) stageTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.ContainsAny(raw, "-:/T") {
		return raw
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return formatAge(now().Sub(t))
}

func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 14*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	}
}
