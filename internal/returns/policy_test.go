package returns

import (
	"testing"
	"time"

	"fulfillment/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePolicy(t *testing.T) {
	productID := uuid.New()
	categoryID := uuid.New()
	otherProduct := uuid.New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	defaultPolicy := model.ReturnPolicy{ID: uuid.New(), Name: "default", IsActive: true, Priority: 0, CreatedAt: base}
	categoryPolicy := model.ReturnPolicy{ID: uuid.New(), Name: "category", CategoryID: &categoryID, IsActive: true, Priority: 0, CreatedAt: base}
	productPolicy := model.ReturnPolicy{ID: uuid.New(), Name: "product", ProductID: &productID, IsActive: true, Priority: 0, CreatedAt: base}
	foreignPolicy := model.ReturnPolicy{ID: uuid.New(), Name: "foreign", ProductID: &otherProduct, IsActive: true, Priority: 100, CreatedAt: base}
	boostedDefault := model.ReturnPolicy{ID: uuid.New(), Name: "boosted default", IsActive: true, Priority: 10, CreatedAt: base}
	inactiveProduct := model.ReturnPolicy{ID: uuid.New(), Name: "inactive", ProductID: &productID, IsActive: false, Priority: 50, CreatedAt: base}
	olderDefault := model.ReturnPolicy{ID: uuid.New(), Name: "older default", IsActive: true, Priority: 0, CreatedAt: base.Add(-time.Hour)}

	tests := []struct {
		name       string
		candidates []model.ReturnPolicy
		categoryID *uuid.UUID
		want       string
	}{
		{"product beats category and default on equal priority", []model.ReturnPolicy{defaultPolicy, categoryPolicy, productPolicy}, &categoryID, "product"},
		{"category beats default on equal priority", []model.ReturnPolicy{defaultPolicy, categoryPolicy}, &categoryID, "category"},
		{"higher priority wins over specificity", []model.ReturnPolicy{productPolicy, boostedDefault}, &categoryID, "boosted default"},
		{"policies for other products are ignored", []model.ReturnPolicy{foreignPolicy, defaultPolicy}, &categoryID, "default"},
		{"inactive policies are ignored", []model.ReturnPolicy{inactiveProduct, categoryPolicy}, &categoryID, "category"},
		{"category policy needs a category", []model.ReturnPolicy{categoryPolicy, defaultPolicy}, nil, "default"},
		{"older policy wins a full tie", []model.ReturnPolicy{defaultPolicy, olderDefault}, nil, "older default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolvePolicy(tc.candidates, productID, tc.categoryID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Name)
		})
	}
}

func TestResolvePolicy_NotFound(t *testing.T) {
	other := uuid.New()
	_, err := ResolvePolicy([]model.ReturnPolicy{{ID: uuid.New(), ProductID: &other, IsActive: true}}, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrPolicyNotFound)

	_, err = ResolvePolicy(nil, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}
