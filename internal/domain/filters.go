package domain

import (
	"strconv"
	"strings"
)

// Filters narrows candidate retrieval. All fields are optional and combine
// conjunctively. Binding and Block keep their raw string form: malformed
// values mean the filter is simply not applied, matching the availability-
// over-strictness contract of the ingestion side.
type Filters struct {
	Topic     string
	Court     string
	Phase     string
	Block     string
	Binding   string
	Provision string
	Thesis    string
}

var (
	bindingTrue  = map[string]bool{"true": true, "1": true, "yes": true, "sim": true}
	bindingFalse = map[string]bool{"false": true, "0": true, "no": true, "nao": true, "não": true}
)

// BindingValue parses the tri-state binding filter. ok is false when the
// filter is absent or unparseable.
func (f Filters) BindingValue() (value, ok bool) {
	s := strings.ToLower(strings.TrimSpace(f.Binding))
	if bindingTrue[s] {
		return true, true
	}
	if bindingFalse[s] {
		return false, true
	}
	return false, false
}

// BlockValue parses the analysis-block filter. ok is false when the filter is
// absent or not numeric.
func (f Filters) BlockValue() (int, bool) {
	s := strings.TrimSpace(f.Block)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Echo returns the non-empty filters as a map for response echoing. Raw
// string forms are preserved so callers see exactly what was applied.
func (f Filters) Echo() map[string]string {
	m := make(map[string]string)
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			m[k] = v
		}
	}
	set("tema", f.Topic)
	set("tribunal", f.Court)
	set("fase", f.Phase)
	set("bloco", f.Block)
	set("vinculante", f.Binding)
	set("dispositivo", f.Provision)
	set("tese", f.Thesis)
	return m
}

// Matches reports whether a record satisfies every specified filter. The
// record store applies the same predicates in SQL; this in-process form
// backs the graph strategy and tests.
func (f Filters) Matches(r *PrecedentRecord) bool {
	if !containsFold(r.Topic, f.Topic) {
		return false
	}
	if !containsFold(r.Court, f.Court) {
		return false
	}
	if !containsFold(r.Phase, f.Phase) {
		return false
	}
	if want, ok := f.BindingValue(); ok && r.Binding != want {
		return false
	}
	if want, ok := f.BlockValue(); ok {
		if r.Block == nil || *r.Block != want {
			return false
		}
	}
	if p := strings.TrimSpace(f.Provision); p != "" {
		found := false
		for _, d := range r.CitedProvisions {
			if containsFold(d, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !containsFold(r.DefenseTheses, f.Thesis) {
		return false
	}
	return true
}

// containsFold is a case-insensitive substring check; an empty needle always
// matches.
func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
