package mailbox

import (
	"fmt"
	"strings"
)

// Format renders envelopes as a human-readable transcript, grouped by label
// in order of first appearance. Order within a group is preserved.
//
// Returns an empty string if there are no envelopes.
func Format(envs []Envelope) string {
	if len(envs) == 0 {
		return ""
	}

	groups := make(map[string][]Envelope)
	var labelOrder []string
	for _, env := range envs {
		if _, exists := groups[env.Label]; !exists {
			labelOrder = append(labelOrder, env.Label)
		}
		groups[env.Label] = append(groups[env.Label], env)
	}

	var b strings.Builder
	for i, label := range labelOrder {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", strings.ToUpper(label))
		for _, env := range groups[label] {
			fmt.Fprintf(&b, "  %s", env)
			if env.Broadcast {
				b.WriteString(" (broadcast)")
			}
			b.WriteString("\n")
			if env.Payload != nil {
				fmt.Fprintf(&b, "    %v\n", env.Payload)
			}
		}
	}
	return b.String()
}

// FilterOptions controls which envelopes Filter keeps.
type FilterOptions struct {
	Labels        []string // Only these labels (empty = all)
	Sender        string   // Only from this sender (empty = all)
	BroadcastOnly bool     // Only broadcast copies
	MaxEnvelopes  int      // Keep at most this many, most recent last (0 = unlimited)
}

// Filter returns the subset of envs matching opts. Filters apply in order:
// label, sender, broadcast, then the count limit.
func Filter(envs []Envelope, opts FilterOptions) []Envelope {
	labelSet := make(map[string]bool, len(opts.Labels))
	for _, l := range opts.Labels {
		labelSet[l] = true
	}

	var result []Envelope
	for _, env := range envs {
		if len(labelSet) > 0 && !labelSet[env.Label] {
			continue
		}
		if opts.Sender != "" && env.Sender != opts.Sender {
			continue
		}
		if opts.BroadcastOnly && !env.Broadcast {
			continue
		}
		result = append(result, env)
	}

	if opts.MaxEnvelopes > 0 && len(result) > opts.MaxEnvelopes {
		result = result[len(result)-opts.MaxEnvelopes:]
	}
	return result
}
