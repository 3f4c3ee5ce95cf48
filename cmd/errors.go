package cmd

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers that get a hint.
const (
	erDBAccessDenied    = 1044
	erAccessDeniedError = 1045
	erBadDBError        = 1049
	erParseError        = 1064
	erTableAccessDenied = 1142
	erNoSuchTable       = 1146
)

const missingTableHint = "hint: check that the table exists in the database and that its name is spelled correctly"

// errorHint returns a one-line suggestion for errors a user can usually fix,
// or "" when there is nothing useful to add.
func errorHint(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erNoSuchTable:
			return missingTableHint
		case erTableAccessDenied:
			return "hint: the user lacks SELECT privilege on this table"
		case erParseError:
			return "hint: table names with spaces or special characters need --quote-identifiers"
		case erAccessDeniedError, erDBAccessDenied:
			return "hint: check the user and password (-u, -p or MYSQL_USER, MYSQL_PWD)"
		case erBadDBError:
			return "hint: check the database name"
		}
		return ""
	}
	if isInvalidTableError(err) {
		return missingTableHint
	}
	return ""
}

// isInvalidTableError checks the message chain for substrings indicating a
// missing table, for errors that did not come from the server itself.
func isInvalidTableError(err error) bool {
	patterns := []string{
		"doesn't exist",
		"does not exist",
		"no such table",
		"unknown table",
	}
	for err != nil {
		errStr := strings.ToLower(err.Error())
		for _, pat := range patterns {
			if strings.Contains(errStr, pat) {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}
