package errors

// Storage helpers: map driver errors from postgres, clickhouse and redis to ErrorCode

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// SQLSTATE codes we care about
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrReadOnlySQLTransaction = "25006"
	pgErrCannotConnectNow       = "57P03"
	pgErrUndefinedTable         = "42P01"
)

// ClickHouse server exception codes
const (
	chErrUnknownTable    = 60
	chErrTooManyParts    = 252
	chErrTimeoutExceeded = 159
)

// ExtractPgError returns the PgError at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == pgErrUniqueViolation
}

// DBErrorCode maps a postgres error to an ErrorCode
// !ok means err wasn't a PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrUndefinedTable:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, transportCode(err), msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// FromClickHouse wraps a clickhouse error; a missing table means the journal is not ready
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		switch ex.Code {
		case chErrUnknownTable, chErrTooManyParts, chErrTimeoutExceeded:
			return Wrap(err, ErrorCodeUnavailable, msg)
		}
		return Wrap(err, ErrorCodeDB, msg)
	}
	return Wrap(err, transportCode(err), msg)
}

// FromRedis wraps a redis error; redis.Nil becomes NotFound
func FromRedis(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, redis.Nil) {
		return Wrap(err, ErrorCodeNotFound, msg)
	}
	return Wrap(err, transportCode(err), msg)
}

// transportCode classifies errors that never reached a server
func transportCode(err error) ErrorCode {
	var ne net.Error
	switch {
	case stderrs.Is(err, context.DeadlineExceeded), stderrs.As(err, &ne):
		return ErrorCodeUnavailable
	case stderrs.Is(err, net.ErrClosed):
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// IsRetryable reports whether a storage error is transient
// Local cancellations are never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrCannotConnectNow:
			return true
		}
		return false
	}
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex.Code == chErrTooManyParts || ex.Code == chErrTimeoutExceeded
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "connection reset") ||
		strings.Contains(s, "broken pipe") ||
		strings.Contains(s, "commit unexpectedly resulted in rollback")
}
