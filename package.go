// Package cotoolz provides coroutine-aware analogues of iterate, map
// and zip. Unlike ordinary iteration helpers, the combinators forward
// the whole coroutine protocol through composition: values sent in,
// errors thrown in and close requests all reach every underlying
// coroutine, and their results are combined into one.
//
// The protocol is the Coroutine interface. Next and Send produce a
// value or report ErrExhausted, Throw injects an error at the current
// suspension point, and Close terminates the coroutine.
//
// Generator is the native coroutine: its body runs on a runtime
// coroutine and suspends at every yield. Plain sequences (iter.Seq
// values, slices and pull iterators) are adapted with Seq, Slice and
// Iter, or classified with Coerce. Empty returns the always-exhausted
// coroutine.
//
// Map and Zip combine one or more coroutines. Every protocol message
// is forwarded to the underlying coroutines synchronously and in
// argument order; the first one that reports exhaustion or an
// unhandled error ends the call. Close is delivered to all of them
// regardless of individual failures.
//
// Nothing in the package is safe for concurrent use. A coroutine is
// driven by one caller at a time, and generators that were started
// must be run to completion or closed to release their coroutine.
package cotoolz
