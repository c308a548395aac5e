// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command shellmaster is an AI-powered Linux shell assistant: it turns a
// natural-language request into a single suggested shell command, backed
// by a short reconnaissance pass over the local machine and a local
// example knowledge base (spec §1).
package main

import (
	"fmt"
	"os"

	"github.com/shellmaster/sm/internal/config"
)

func main() {
	config.ScrubProxyEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
