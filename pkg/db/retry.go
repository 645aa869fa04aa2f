package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// RetryPolicy controls how transient database failures are retried.
// A fresh backoff is built for every Do call since backoffs are stateful.
type RetryPolicy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	ceiling := p.MaxDelay
	if ceiling < base {
		ceiling = base
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(ceiling, b)
	return retry.WithMaxRetries(p.MaxRetries, b)
}

// Do runs fn and retries it while it fails with a transient error.
// Permanent errors and the last transient error once retries are exhausted are returned as-is.
func (p RetryPolicy) Do(ctx context.Context, log logrus.FieldLogger, op string, fn func(ctx context.Context) error) error {
	return p.do(ctx, log, op, IsTransient, fn)
}

// DoWrite is Do for statements that must not run twice. It only retries failures that
// guarantee the statement never reached the server, see IsRetryableWrite.
func (p RetryPolicy) DoWrite(ctx context.Context, log logrus.FieldLogger, op string, fn func(ctx context.Context) error) error {
	return p.do(ctx, log, op, IsRetryableWrite, fn)
}

func (p RetryPolicy) do(ctx context.Context, log logrus.FieldLogger, op string, retryable func(error) bool, fn func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if retryable(err) {
			log.Warnf("Repository: transient database error during %s (attempt %d/%d): %v", op, attempt, p.MaxRetries+1, err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// IsTransient reports whether err is a connectivity hiccup worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53": // connection_exception, insufficient_resources
			return true
		}
		switch pqErr.Code {
		case "40001", "40P01", "57P01", "57P02", "57P03":
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryableWrite reports whether a failed write certainly did not execute.
// A reset or EOF mid-statement may hide a committed row, so those are not retried.
func IsRetryableWrite(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "08001", "08004", // unable to establish, rejected
			"53300",          // too_many_connections
			"40001", "40P01", // rolled back by the server
			"57P03": // cannot_connect_now
			return true
		}
		return false
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
