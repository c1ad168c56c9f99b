// SPDX-License-Identifier: Apache-2.0

package cmd

import "errors"

var (
	errAnomaliesFound   = errors.New("benchmark history has anomalies")
	errRegressionsFound = errors.New("benchmark regressions found")
	errNoCommitID       = errors.New("no commit id given, pass --commit-id or set GITHUB_SHA")
)
