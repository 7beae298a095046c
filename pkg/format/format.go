// Package format renders fetched poll data as human-readable text.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pollyapi/polly-go/pkg/client"
)

// OptionStanding is one option's position in the ranked results of a poll.
type OptionStanding struct {
	Rank       int
	OptionID   int
	Text       string
	VoteCount  int
	Percentage float64
}

// TotalVotes sums the vote counts across all options.
func TotalVotes(results client.PollResults) int {
	total := 0
	for _, opt := range results.Results {
		total += opt.VoteCount
	}
	return total
}

// Standings ranks options by descending vote count; ties keep their original
// order. Percentages are of the total vote count and are all zero when no
// votes have been cast.
func Standings(results client.PollResults) []OptionStanding {
	total := TotalVotes(results)

	standings := make([]OptionStanding, len(results.Results))
	for i, opt := range results.Results {
		pct := 0.0
		if total > 0 {
			pct = float64(opt.VoteCount) / float64(total) * 100
		}
		standings[i] = OptionStanding{
			OptionID:   opt.OptionID,
			Text:       opt.Text,
			VoteCount:  opt.VoteCount,
			Percentage: pct,
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].VoteCount > standings[j].VoteCount
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}

// RenderResults writes a ranked, human-readable summary of poll results.
func RenderResults(w io.Writer, results client.PollResults) {
	fmt.Fprintf(w, "Poll #%d: %s\n", results.PollID, results.Question)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if len(results.Results) == 0 {
		fmt.Fprintln(w, "No votes cast yet.")
		return
	}

	fmt.Fprintf(w, "Total votes: %d\n", TotalVotes(results))
	fmt.Fprintln(w, strings.Repeat("-", 30))

	for _, s := range Standings(results) {
		fmt.Fprintf(w, "%d. %s\n", s.Rank, s.Text)
		fmt.Fprintf(w, "   Votes: %d (%.1f%%)\n", s.VoteCount, s.Percentage)
		fmt.Fprintf(w, "   Option ID: %d\n", s.OptionID)
		fmt.Fprintln(w)
	}
}

// RenderPollsSummary writes a readable listing of fetched polls.
func RenderPollsSummary(w io.Writer, polls []client.Poll) {
	if len(polls) == 0 {
		fmt.Fprintln(w, "No polls found.")
		return
	}

	fmt.Fprintf(w, "Found %d polls:\n", len(polls))
	fmt.Fprintln(w, strings.Repeat("-", 50))

	for _, poll := range polls {
		fmt.Fprintf(w, "ID: %d\n", poll.ID)
		fmt.Fprintf(w, "Question: %s\n", poll.Question)
		fmt.Fprintf(w, "Created: %s\n", poll.CreatedAt)
		fmt.Fprintf(w, "Owner ID: %d\n", poll.OwnerID)
		fmt.Fprintf(w, "Options (%d):\n", len(poll.Options))
		for _, opt := range poll.Options {
			fmt.Fprintf(w, "  - %s (ID: %d)\n", opt.Text, opt.ID)
		}
		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
}
