package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlap_SameRegion(t *testing.T) {
	assert.True(t, Overlap([]string{"Juba"}, []string{"juba"}))
}

func TestOverlap_ChildAndParent(t *testing.T) {
	assert.True(t, Overlap([]string{"El Fasher"}, []string{"North Darfur"}))
}

func TestOverlap_SharedGrandparent(t *testing.T) {
	assert.True(t, Overlap([]string{"El Fasher"}, []string{"Nyala"}))
}

func TestOverlap_Unrelated(t *testing.T) {
	assert.False(t, Overlap([]string{"Juba"}, []string{"Khartoum"}))
}

func TestOverlap_EmptyListsOverlapWithAnything(t *testing.T) {
	assert.True(t, Overlap(nil, []string{"Khartoum"}))
	assert.True(t, Overlap([]string{"Khartoum"}, nil))
}

func TestCollapseDisplay_ChildAndParentCollapse(t *testing.T) {
	got := CollapseDisplay([]string{"North Darfur", "El Fasher"})
	assert.Equal(t, []string{"North Darfur (El Fasher)"}, got)
}

func TestCollapseDisplay_DropsTopLevelAncestorOfSpecificChild(t *testing.T) {
	got := CollapseDisplay([]string{"Darfur", "El Fasher"})
	assert.Equal(t, []string{"El Fasher"}, got)
}

func TestCollapseDisplay_UnrelatedRegionsPassThrough(t *testing.T) {
	got := CollapseDisplay([]string{"Juba", "Khartoum"})
	assert.Equal(t, []string{"Juba", "Khartoum"}, got)
}
