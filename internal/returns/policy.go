package returns

import (
	"sort"

	"fulfillment/internal/model"

	"github.com/google/uuid"
)

// ResolvePolicy picks the single policy governing a product. Candidates may
// contain unrelated or inactive policies; they are filtered here. Higher
// priority wins, then the more specific scope (product > category > default),
// then the older policy.
func ResolvePolicy(candidates []model.ReturnPolicy, productID uuid.UUID, categoryID *uuid.UUID) (*model.ReturnPolicy, error) {
	matches := make([]model.ReturnPolicy, 0, len(candidates))
	for _, p := range candidates {
		if p.IsActive && policyMatches(&p, productID, categoryID) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return nil, ErrPolicyNotFound
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := &matches[i], &matches[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Scope() != b.Scope() {
			return a.Scope() > b.Scope()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	selected := matches[0]
	return &selected, nil
}

func policyMatches(p *model.ReturnPolicy, productID uuid.UUID, categoryID *uuid.UUID) bool {
	switch p.Scope() {
	case model.ScopeProduct:
		return *p.ProductID == productID
	case model.ScopeCategory:
		return categoryID != nil && *p.CategoryID == *categoryID
	default:
		return true
	}
}
