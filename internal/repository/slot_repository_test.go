package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanSlot reads request_notes and rejection_reason into plain strings, so
// the schema must guarantee the columns never hold NULL: inserts omit them
// and rely on the default, resets write ''.
func TestTimeSlotTextColumnsAreNeverNull(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "migrations", "20250101000001_create_time_slots.sql"))
	require.NoError(t, err)

	for _, column := range []string{"request_notes", "rejection_reason"} {
		line := ddlLine(string(ddl), column)
		require.NotEmpty(t, line, column)
		assert.Contains(t, line, "NOT NULL DEFAULT ''", column)
	}
}

func TestRejectSetsOnlyRejectionFields(t *testing.T) {
	assert.Contains(t, rejectSlotQuery, "rejection_reason")
	assert.NotContains(t, rejectSlotQuery, "approved_by")
	assert.NotContains(t, rejectSlotQuery, "approved_at")
}

func ddlLine(ddl, column string) string {
	for _, line := range strings.Split(ddl, "\n") {
		if strings.Contains(line, column) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
