package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	"hgdb/internal/apperror"
)

// ============================================================================
// Keyspace Naming
// ============================================================================

// keyspaceName restricts names to identifiers safe to splice into DDL
var keyspaceName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// validateKeyspaceName rejects names that cannot become a table name
func validateKeyspaceName(name string) error {
	if !keyspaceName.MatchString(name) {
		return apperror.Validationf("invalid keyspace name %q", name)
	}
	return nil
}

// tableName maps a keyspace to its table
func tableName(keyspace string) string {
	return "kv_" + keyspace
}

// ============================================================================
// Open Helpers
// ============================================================================

// isMemory reports whether path names an in-memory database
func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// busyTimeout is how long a connection waits on a locked database, in ms
const busyTimeout = 5000

// dsn appends the per-connection pragmas to path. journal_mode is skipped
// for in-memory databases, which cannot use WAL.
func dsn(path string) string {
	pragmas := []string{
		fmt.Sprintf("busy_timeout(%d)", busyTimeout),
		"synchronous(NORMAL)",
	}
	if !isMemory(path) {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(path)
	for _, p := range pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// openError wraps a failure to open the database
func openError(path string, err error) error {
	return apperror.ErrStorageOpen.WithMessage(fmt.Sprintf("failed to open database at %q", path)).WithInternal(err)
}
