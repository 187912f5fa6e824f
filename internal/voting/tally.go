package voting

import (
	"sort"

	"campus-vote/internal/database"
)

// maxRunoffRounds bounds instant-runoff elimination. Validated ballots
// terminate long before this; malformed historical data yields "no winner
// determined" instead of looping.
const maxRunoffRounds = 100

// CandidateTally is one candidate's line in a position result
type CandidateTally struct {
	CandidateID int64   `json:"candidate_id"`
	Name        string  `json:"name"`
	Votes       int     `json:"votes"`
	Percentage  float64 `json:"percentage"`
	Rank        int     `json:"rank"`
}

// PositionResult is the tally outcome for a single position
type PositionResult struct {
	PositionID   int64            `json:"position_id"`
	PositionName string           `json:"position"`
	Type         string           `json:"type"`
	TotalBallots int              `json:"total_ballots"`
	Abstentions  int              `json:"abstentions"`
	ValidVotes   int              `json:"valid_votes"`
	Candidates   []CandidateTally `json:"candidates"`
	WinnerIDs    []int64          `json:"winner_ids"`
	RunoffRounds int              `json:"runoff_rounds,omitempty"` // ranked only
	SafetyLimit  bool             `json:"safety_limit_exceeded,omitempty"`
}

// Tally computes vote counts, percentages, ranks, and winners for one
// position from the parsed ballots of its election. Pure function: the same
// ballot set always yields the same result, and iteration order never
// affects the outcome.
func Tally(position database.Position, candidates []database.Candidate, ballots []ParsedBallot) PositionResult {
	result := PositionResult{
		PositionID:   position.ID,
		PositionName: position.Name,
		Type:         position.Type,
	}

	approved := make(map[int64]bool, len(candidates))
	for _, c := range candidates {
		approved[c.ID] = true
	}

	// Partition into abstentions and participating ballots; ballots with a
	// malformed or empty slot for this position are skipped, not fatal.
	var participating []Entry
	for _, ballot := range ballots {
		entry, touched := ballot[position.ID]
		if !touched {
			continue
		}
		result.TotalBallots++
		if entry.Abstain {
			result.Abstentions++
			continue
		}
		if entry.Malformed || entry.Value == nil {
			continue
		}
		participating = append(participating, entry)
	}
	result.ValidVotes = len(participating)

	counts := make(map[int64]int, len(candidates))
	switch position.Type {
	case database.PositionTypeSingle:
		for _, entry := range participating {
			if v, ok := entry.Value.(SingleChoice); ok && approved[v.CandidateID] {
				counts[v.CandidateID]++
			}
		}

	case database.PositionTypeMultiple:
		for _, entry := range participating {
			v, ok := entry.Value.(MultipleChoice)
			if !ok {
				continue
			}
			for _, id := range v.CandidateIDs {
				if approved[id] {
					counts[id]++
				}
			}
		}

	case database.PositionTypeRanked:
		// The base table shows first-choice counts only; the winner comes
		// from the elimination rounds below.
		for _, entry := range participating {
			v, ok := entry.Value.(RankedChoice)
			if !ok {
				continue
			}
			for _, ranking := range v.Rankings {
				if ranking.Rank == 1 && approved[ranking.CandidateID] {
					counts[ranking.CandidateID]++
				}
			}
		}
	}

	result.Candidates = buildTable(candidates, counts, result.ValidVotes)

	switch position.Type {
	case database.PositionTypeSingle:
		result.WinnerIDs = topWinners(result.Candidates, 1)

	case database.PositionTypeMultiple:
		seats := 1
		if position.MaxSelection != nil {
			seats = *position.MaxSelection
		}
		result.WinnerIDs = topWinners(result.Candidates, seats)

	case database.PositionTypeRanked:
		if result.ValidVotes > 0 {
			winnerID, rounds, limitHit := instantRunoff(candidates, participating)
			result.RunoffRounds = rounds
			result.SafetyLimit = limitHit
			if winnerID != 0 {
				result.WinnerIDs = []int64{winnerID}
			}
		}
	}

	return result
}

// buildTable produces the per-candidate table ordered by descending votes,
// ties by ascending candidate id. Ties share a rank: 1 + the number of
// candidates with strictly more votes.
func buildTable(candidates []database.Candidate, counts map[int64]int, validVotes int) []CandidateTally {
	table := make([]CandidateTally, 0, len(candidates))
	for _, c := range candidates {
		votes := counts[c.ID]
		percentage := 0.0
		if validVotes > 0 {
			percentage = float64(votes) / float64(validVotes) * 100
		}
		table = append(table, CandidateTally{
			CandidateID: c.ID,
			Name:        c.Name,
			Votes:       votes,
			Percentage:  percentage,
		})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Votes != table[j].Votes {
			return table[i].Votes > table[j].Votes
		}
		return table[i].CandidateID < table[j].CandidateID
	})

	for i := range table {
		strictlyAhead := 0
		for j := range table {
			if table[j].Votes > table[i].Votes {
				strictlyAhead++
			}
		}
		table[i].Rank = 1 + strictlyAhead
	}

	return table
}

// topWinners takes the first n candidates with votes > 0 from the ordered
// table. The ordering is the same one used for ranking, so tie-breaks are
// stable and never randomized.
func topWinners(table []CandidateTally, n int) []int64 {
	var winners []int64
	for _, row := range table {
		if len(winners) == n {
			break
		}
		if row.Votes == 0 {
			break
		}
		winners = append(winners, row.CandidateID)
	}
	return winners
}

// instantRunoff runs elimination rounds over the participating ranked
// ballots. Each round counts every ballot's highest-ranked surviving
// candidate; a candidate reaching floor(total/2)+1 wins. Otherwise the
// candidate with the fewest round votes is eliminated — ties eliminate the
// lowest candidate id, so the outcome depends only on candidate identity,
// never on ballot insertion order.
func instantRunoff(candidates []database.Candidate, participating []Entry) (winnerID int64, rounds int, limitHit bool) {
	remaining := make(map[int64]bool, len(candidates))
	for _, c := range candidates {
		remaining[c.ID] = true
	}
	if len(remaining) == 0 {
		return 0, 0, false
	}

	for rounds = 1; rounds <= maxRunoffRounds; rounds++ {
		if len(remaining) == 1 {
			// Last candidate standing wins with no majority check
			for id := range remaining {
				return id, rounds, false
			}
		}

		roundVotes := make(map[int64]int, len(remaining))
		totalRoundVotes := 0
		for _, entry := range participating {
			v, ok := entry.Value.(RankedChoice)
			if !ok {
				continue
			}
			preference, ok := currentPreference(v, remaining)
			if !ok {
				continue // ballot exhausted
			}
			roundVotes[preference]++
			totalRoundVotes++
		}

		majority := totalRoundVotes/2 + 1
		if totalRoundVotes > 0 {
			for id := range remaining {
				if roundVotes[id] >= majority {
					return id, rounds, false
				}
			}
		}

		eliminate := int64(0)
		lowest := -1
		for id := range remaining {
			votes := roundVotes[id]
			if lowest == -1 || votes < lowest || (votes == lowest && id < eliminate) {
				lowest = votes
				eliminate = id
			}
		}
		delete(remaining, eliminate)
	}

	return 0, maxRunoffRounds, true
}

// currentPreference returns the ballot's highest preference (lowest rank)
// among the surviving candidates
func currentPreference(v RankedChoice, remaining map[int64]bool) (int64, bool) {
	best := int64(0)
	bestRank := 0
	for _, ranking := range v.Rankings {
		if !remaining[ranking.CandidateID] {
			continue
		}
		if bestRank == 0 || ranking.Rank < bestRank {
			bestRank = ranking.Rank
			best = ranking.CandidateID
		}
	}
	return best, bestRank != 0
}
