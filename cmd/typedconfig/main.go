// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command typedconfig resolves config sources into a single tree and
// prints it, which is mostly useful for debugging layered configs.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		cancel()
		os.Exit(1)
	}
}
