// Package async provides simple, generic helpers for running computations asynchronously and
// waiting for their completion.
//
// The package is centred around the generic type Future that represents the eventual result of an
// asynchronous operation. A Future can be obtained by calling Async, which starts the supplied
// function in its own goroutine and immediately returns a *Future instance. Futures can also be
// created already settled (Resolved, Rejected) or completed by hand through Promise, which is how
// callers bridge callback-style APIs into the package.
//
// The caller can wait for completion with Await, bound the wait with AwaitContext or
// AwaitWithTimeout, or poll the state with IsComplete. Then chains a continuation onto a Future
// and WaitAll collects the results of several futures in order.
//
// # Usage
//
//	import (
//	    "context"
//	    "github.com/dmitrymomot/valkit/pkg/async"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    lookup := async.Async(ctx, "alice@example.com", func(ctx context.Context, email string) (bool, error) {
//	        return users.Exists(ctx, email)
//	    })
//
//	    taken := async.Then(ctx, lookup, func(_ context.Context, exists bool) (string, error) {
//	        if exists {
//	            return "taken", nil
//	        }
//	        return "free", nil
//	    })
//
//	    res, err := taken.Await()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res)
//	}
//
// # Error Handling
//
// The package does not introduce custom error types; functions return the error produced by the user
// callback, the context error when waiting is abandoned, or ErrTimeout from AwaitWithTimeout.
//
// # Performance Considerations
//
// Futures are lightweight wrappers around goroutines and channels. Then spends one goroutine per
// continuation until its source completes, so a source that never completes keeps that goroutine
// parked.
package async
