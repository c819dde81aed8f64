package store

import (
	"fmt"
	"strings"
)

// adminsDDL returns the admins table DDL for the given driver. The only
// dialect differences are the auto-increment id column and the boolean type.
func adminsDDL(driver string) string {
	var id, boolean string
	switch driver {
	case DriverPostgres:
		id = "BIGSERIAL PRIMARY KEY"
		boolean = "BOOLEAN NOT NULL DEFAULT TRUE"
	case DriverMySQL:
		id = "BIGINT PRIMARY KEY AUTO_INCREMENT"
		boolean = "TINYINT(1) NOT NULL DEFAULT 1"
	default: // sqlite
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
		boolean = "INTEGER NOT NULL DEFAULT 1"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admins (
		id %s,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(64) NOT NULL DEFAULT 'admin',
		is_active %s,
		last_login_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`, id, boolean)
}

// documentsDDL is portable across all three drivers: document ids are
// client-generated UUIDs and the payload is stored as a JSON text blob.
func documentsDDL() string {
	return `CREATE TABLE IF NOT EXISTS documents (
		id VARCHAR(36) PRIMARY KEY,
		collection VARCHAR(64) NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

func (s *Store) migrate() error {
	// MySQL has no CREATE INDEX IF NOT EXISTS; a duplicate-index error on
	// re-run is caught below instead.
	indexDDL := `CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`
	if s.driver == DriverMySQL {
		indexDDL = `CREATE INDEX idx_documents_collection ON documents(collection)`
	}

	migrations := []string{
		adminsDDL(s.driver),
		documentsDDL(),
		indexDDL,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
				continue
			}
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
