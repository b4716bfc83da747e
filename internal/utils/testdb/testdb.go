// Package testdb opens a throwaway SQLite database for repository tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const uuidDefault = "(lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-4' || substr(lower(hex(randomblob(2))), 2) || '-8' || substr(lower(hex(randomblob(2))), 2) || '-' || lower(hex(randomblob(6))))"

// ForumPosts and the Advice tables mirror the postgres schema closely enough
// for the repositories' SQL; uuids are stored as text.
var (
	ForumPosts = `CREATE TABLE forum_posts (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		user_id TEXT,
		author_name TEXT,
		content TEXT,
		likes INTEGER NOT NULL DEFAULT 0,
		replies TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`

	AdviceConversations = `CREATE TABLE advice_conversations (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		user_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`

	AdviceMessages = `CREATE TABLE advice_messages (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		conversation_id TEXT,
		user_id TEXT,
		seq INTEGER,
		role TEXT,
		content TEXT,
		source TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (conversation_id, seq)
	)`
)

// Open creates a file-backed database under t.TempDir so concurrent
// connections share it, then runs ddl.
func Open(t *testing.T, ddl ...string) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
