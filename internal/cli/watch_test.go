package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchStore_ReportsWritesToDatabaseFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "timelog.db")
	require.NoError(t, os.WriteFile(dbPath, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := watchStore(ctx, dbPath)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("x"), 0o644))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for the WAL file")
	}
}

func TestWatchStore_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	changes, err := watchStore(ctx, filepath.Join(dir, "timelog.db"))
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-changes:
		if ok {
			// A pending notification may drain first.
			_, ok = <-changes
		}
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
