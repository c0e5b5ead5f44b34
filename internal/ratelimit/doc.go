// Package ratelimit provides the token bucket that throttles every remote
// call issued by the client.
//
// A Limiter starts full, drains one token per call and refills continuously:
// after an interval of inactivity it is full again. Acquire never reports
// "not enough capacity" for a valid count; it only delays the caller until
// enough tokens have accrued. Waiters are not served in FIFO order.
//
// Time is read through github.com/benbjohnson/clock so tests can drive the
// bucket with clock.NewMock.
package ratelimit
