// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package termio holds the small amount of terminal plumbing needed for
// rendering tables of trace data: fixed-width table layout, plus terminal
// width detection so output can be clamped when attached to one.
package termio

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the column width of the terminal attached to standard
// output.  The second result is false when standard output is not a terminal,
// for example when redirected to a file or a pipe.
func TerminalWidth() (uint, bool) {
	fd := int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return 0, false
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	//
	return uint(width), true
}
