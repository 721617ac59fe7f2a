package postgres

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

func TestWhereBuilder(t *testing.T) {
	w := &where{}
	assert.Equal(t, "", w.String())

	w.add("status != ?", types.StatusDeleted)
	w.add("(name ILIKE ? OR code ILIKE ?)", "%a%", "%a%")

	assert.Equal(t, " WHERE status != ? AND (name ILIKE ? OR code ILIKE ?)", w.String())
	assert.Len(t, w.args, 3)
	assert.Equal(t,
		"SELECT 1 WHERE status != $1 AND (name ILIKE $2 OR code ILIKE $3)",
		rebind("SELECT 1"+w.String()))
}

func TestSearchPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%rice%", searchPattern("  rice "))
	assert.Equal(t, `%50\% off\_x%`, searchPattern("50% off_x"))
}

func TestPaginate(t *testing.T) {
	query, args := paginate("SELECT 1", nil, types.NewNoLimitQueryFilter())
	assert.Equal(t, "SELECT 1", query)
	assert.Empty(t, args)

	filter := &types.QueryFilter{Limit: lo.ToPtr(10), Offset: lo.ToPtr(20)}
	query, args = paginate("SELECT 1", []interface{}{"x"}, filter)
	assert.Equal(t, "SELECT 1 LIMIT ? OFFSET ?", query)
	assert.Equal(t, []interface{}{"x", 10, 20}, args)

	var nilFilter *types.QueryFilter
	query, _ = paginate("SELECT 1", nil, nilFilter)
	assert.Equal(t, "SELECT 1", query)
}
