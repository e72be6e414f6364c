package queries_test

import (
	"testing"

	"picking/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenOrdersQuery(t *testing.T) {
	query := queries.NewGetOpenOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetOpenOrdersQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetOpenOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
}
