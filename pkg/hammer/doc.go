// Package hammer is the generic invocation and decoding layer for the
// remote management CLI.
//
// A logical operation (entity keyword, action verb, option map) is turned
// into one Invocation, executed through an Executor, classified by exit
// status, and decoded into Records according to the requested output format.
//
// The package holds no mutable shared state: every call is fully
// parameterized and safe to issue from independent goroutines. It performs
// no retries and no caching; a decoded Record reflects server state at
// invocation time only.
package hammer
