package querybuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wapgraph/internal/waperr"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    error
	}{
		{"empty", nil, waperr.ErrNoFilterProvided},
		{"conflicting", Filters{
			{PropertyTarget, "http://x/map1", MatchExact},
			{PropertyTarget, "http://x/", MatchContains},
		}, waperr.ErrConflictingMatchType},
		{"repeated", Filters{
			{PropertyBody, "a", MatchExact},
			{PropertyBody, "b", MatchExact},
		}, waperr.ErrInvalidRequest},
		{"empty value", Filters{{PropertyCreator, "", MatchExact}}, waperr.ErrInvalidRequest},
		{"unknown property", Filters{{Property("motivation"), "x", MatchExact}}, waperr.ErrInvalidRequest},
		{"unknown match", Filters{{PropertyBody, "x", MatchType(7)}}, waperr.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filters.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_AcceptsAllProperties(t *testing.T) {
	f := Filters{
		{PropertyTarget, "http://x/map1", MatchExact},
		{PropertyBody, "note", MatchContains},
		{PropertySelector, "xywh=0,0,10,10", MatchExact},
		{PropertyCreator, "Ada", MatchContains},
	}
	assert.NoError(t, f.Validate())
}

func TestParseProperty(t *testing.T) {
	p, err := ParseProperty(" Target ")
	require.NoError(t, err)
	assert.Equal(t, PropertyTarget, p)

	_, err = ParseProperty("motivation")
	assert.True(t, errors.Is(err, waperr.ErrInvalidRequest))
}

func TestFilters_SortedFollowsPropertyOrder(t *testing.T) {
	f := Filters{
		{PropertyCreator, "c", MatchExact},
		{PropertyTarget, "t", MatchExact},
		{PropertyBody, "b", MatchExact},
	}

	sorted := f.Sorted()

	assert.Equal(t, []Property{PropertyTarget, PropertyBody, PropertyCreator},
		[]Property{sorted[0].Property, sorted[1].Property, sorted[2].Property})
	assert.Equal(t, PropertyCreator, f[0].Property, "input untouched")
}

func TestMatchType_String(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "contains", MatchContains.String())
	assert.Equal(t, "MatchType(9)", MatchType(9).String())
}
