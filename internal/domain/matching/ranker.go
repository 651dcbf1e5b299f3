package matching

import (
	"sort"

	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"
)

type FilterPolicy int

const (
	// DropZeroMatches removes results scoring 0.
	DropZeroMatches FilterPolicy = iota
	KeepAll
)

// Ranker runs Calculate over a candidate list, filters by Policy and
// stable-sorts by percentage descending. Ties keep candidate order.
type Ranker struct {
	Policy FilterPolicy
}

func NewRanker() Ranker {
	return Ranker{Policy: DropZeroMatches}
}

func (rk Ranker) RankStudents(target role.Role, students []user.User) []Result {
	results := make([]Result, 0, len(students))
	for _, s := range students {
		results = append(results, Calculate(s, target))
	}
	return rk.finish(results)
}

func (rk Ranker) RankRoles(student user.User, roles []role.Role) []Result {
	results := make([]Result, 0, len(roles))
	for _, r := range roles {
		results = append(results, Calculate(student, r))
	}
	return rk.finish(results)
}

func (rk Ranker) finish(results []Result) []Result {
	out := results[:0]
	for _, res := range results {
		if rk.Policy == DropZeroMatches && res.MatchPercentage == 0 {
			continue
		}
		out = append(out, res)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}
