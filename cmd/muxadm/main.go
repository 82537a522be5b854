// Copyright 2026 The Snimux Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/snimux/muxadm/cmd/muxadm/commands"
	"github.com/snimux/muxadm/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
