package sqlite

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database private to the test. The
// writer and reader pools share it through cache=shared under a name derived
// from t.Name().
func newTestDB(t *testing.T) *DB {
	t.Helper()

	name := url.PathEscape(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&" + basePragmas

	db, err := open(context.Background(), dsn, "memory:"+name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
