package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// containsAll returns true if all substrings in subs are present in s.
func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// isolateEnv clears connection settings from the environment and moves into
// an empty directory so no stray .env file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"MYSQL_HOST", "MYSQL_TCP_PORT", "MYSQL_USER", "MYSQL_PWD"} {
		t.Setenv(env, "")
	}
	chdir(t, t.TempDir())
}

// fakeDB routes sqlOpen to a sqlmock database and records the DSN used.
type fakeDB struct {
	mock   sqlmock.Sqlmock
	dsn    string
	opened int
}

func useFakeDB(t *testing.T) *fakeDB {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fakeDB{mock: mock}
	origOpen, origPing := sqlOpen, dbPing
	t.Cleanup(func() { sqlOpen, dbPing = origOpen, origPing })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		f.dsn = dsn
		f.opened++
		return db, nil
	}
	dbPing = func(context.Context, *sql.DB) error { return nil }
	return f
}

// forbidConnect fails the test if a connection is attempted.
func forbidConnect(t *testing.T) {
	t.Helper()
	origOpen := sqlOpen
	t.Cleanup(func() { sqlOpen = origOpen })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		t.Errorf("unexpected connection attempt: %s", dsn)
		return nil, sql.ErrConnDone
	}
}

type fakePasswordReader struct {
	password string
	calls    int
	prompt   string
}

func (f *fakePasswordReader) ReadPassword(prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.password, nil
}

func usePasswordReader(t *testing.T, pr PasswordReader) {
	t.Helper()
	orig := newPasswordReader
	t.Cleanup(func() { newPasswordReader = orig })
	newPasswordReader = func(io.Reader, io.Writer) PasswordReader {
		return pr
	}
}

// run executes the root command with args and returns exit status, stdout
// and stderr.
func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	code := execute(cmd, args)
	return code, stdout.String(), stderr.String()
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
