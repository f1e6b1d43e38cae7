package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstringOrFilter_BuildsDisjunction(t *testing.T) {
	clause, arg := SubstringOrFilter([]string{"name", "mail"}, "Silva", 1)
	assert.Equal(t, "(name::text ILIKE $1 OR mail::text ILIKE $1)", clause)
	assert.Equal(t, "%Silva%", arg)
}

func TestSubstringOrFilter_SingleColumn(t *testing.T) {
	clause, arg := SubstringOrFilter([]string{"merchant_name"}, "mercado", 3)
	assert.Equal(t, "(merchant_name::text ILIKE $3)", clause)
	assert.Equal(t, "%mercado%", arg)
}

func TestSubstringOrFilter_SamePlaceholderForAllColumns(t *testing.T) {
	clause, _ := SubstringOrFilter([]string{"a", "b", "c", "d"}, "x", 2)
	assert.NotContains(t, clause, "$1")
	assert.NotContains(t, clause, "$3")
	assert.Equal(t, "(a::text ILIKE $2 OR b::text ILIKE $2 OR c::text ILIKE $2 OR d::text ILIKE $2)", clause)
}

func TestEqualityClause_AndCombined(t *testing.T) {
	allowed := map[string]bool{"login": true, "password": true}
	clause, args, err := EqualityClause([]Equality{
		{Column: "login", Value: "admin"},
		{Column: "password", Value: "secret"},
	}, allowed, 1)
	require.NoError(t, err)
	assert.Equal(t, "login = $1 AND password = $2", clause)
	assert.Equal(t, []any{"admin", "secret"}, args)
}

func TestEqualityClause_PlaceholdersStartAtArgPos(t *testing.T) {
	allowed := map[string]bool{"status": true}
	clause, args, err := EqualityClause([]Equality{{Column: "status", Value: "Ativo"}}, allowed, 5)
	require.NoError(t, err)
	assert.Equal(t, "status = $5", clause)
	assert.Equal(t, []any{"Ativo"}, args)
}

func TestEqualityClause_RejectsUnknownColumn(t *testing.T) {
	allowed := map[string]bool{"login": true}
	_, _, err := EqualityClause([]Equality{
		{Column: "login", Value: "admin"},
		{Column: "login; DROP TABLE users", Value: "x"},
	}, allowed, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter column")
}

func TestEqualityClause_EmptyConds(t *testing.T) {
	clause, args, err := EqualityClause(nil, map[string]bool{}, 1)
	require.NoError(t, err)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
