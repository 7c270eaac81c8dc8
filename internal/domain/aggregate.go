package domain

import "strings"

// Job is a flat job entry tagged with the stage it belongs to.
type Job struct {
	Name  string
	Stage string
	State State
}

// AggregateState folds status states into one stage state.
// error beats failure beats pending; success requires every status to succeed.
func AggregateState(statuses []Status) State {
	seen := map[State]bool{}
	for _, s := range statuses {
		seen[ParseState(string(s.State))] = true
	}
	switch {
	case seen[StateError]:
		return StateError
	case seen[StateFailure]:
		return StateFailure
	case seen[StatePending]:
		return StatePending
	case len(seen) == 1 && seen[StateSuccess]:
		return StateSuccess
	default:
		return StateUnknown
	}
}

// GroupJobs builds ordered stages from a flat job list. Stages appear in the
// order their first job appears, each stage state is aggregated from its jobs
// and job names are trimmed with TrimContext.
func GroupJobs(jobs []Job, trimPrefixes []string) []Stage {
	var stages []Stage
	index := map[string]int{}
	for _, j := range jobs {
		i, ok := index[j.Stage]
		if !ok {
			i = len(stages)
			index[j.Stage] = i
			stages = append(stages, Stage{Name: j.Stage})
		}
		prefixes := append(append([]string{}, trimPrefixes...), j.Stage)
		stages[i].Statuses = append(stages[i].Statuses, Status{
			Name:  TrimContext(j.Name, prefixes...),
			State: ParseState(string(j.State)),
		})
	}
	for i := range stages {
		stages[i].State = AggregateState(stages[i].Statuses)
	}
	return stages
}

// TrimContext strips separators and any of the given prefixes from a job
// context name. A prefix is only removed when the next character is not a
// letter, so "testing" keeps its "test".
func TrimContext(name string, prefixes ...string) string {
	name = strings.Trim(name, "-/_")
	for _, prefix := range prefixes {
		if prefix == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if rest == "" || isASCIILetter(rest[0]) {
			continue
		}
		return TrimContext(rest, prefixes...)
	}
	return name
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
