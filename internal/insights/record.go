package insights

// Action is a single recommended follow-up derived from a transcript.
type Action struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Record is the partial, mergeable cache entry for one transcript
// fingerprint. Each field is independently present or absent; a nil field
// means "not computed yet", never "computed as empty". Actions and Topics
// must serialize even when empty: "computed, none found" is a result and
// has to survive the cache round trip.
type Record struct {
	Summary *string  `json:"summary,omitempty"`
	Actions []Action `json:"actions"`
	Topics  []string `json:"topics"`
}

// HasSummary reports whether the summary field is populated.
func (r Record) HasSummary() bool { return r.Summary != nil }

// HasActions reports whether the actions field is populated.
func (r Record) HasActions() bool { return r.Actions != nil }

// HasTopics reports whether the topics field is populated.
func (r Record) HasTopics() bool { return r.Topics != nil }

// Complete reports whether all three derived fields are populated.
func (r Record) Complete() bool {
	return r.HasSummary() && r.HasActions() && r.HasTopics()
}

// Merge overlays update onto r at field granularity: fields present in
// update replace r's, fields absent in update leave r's untouched. A
// populated field is never discarded by a write targeting another field.
func (r Record) Merge(update Record) Record {
	out := r
	if update.Summary != nil {
		out.Summary = update.Summary
	}
	if update.Actions != nil {
		out.Actions = update.Actions
	}
	if update.Topics != nil {
		out.Topics = update.Topics
	}
	return out
}
