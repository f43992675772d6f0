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

// Package lt implements the binary trace file format (.ltv).  A file is the
// 8-byte "ltvtrace" identifier, a big-endian version pair, a column
// directory (name and height per column) and finally the column data, each
// element as its 32-byte big-endian field encoding.  Column order in the
// file is the column order of the trace, so a round-trip reproduces the
// trace exactly.
package lt

import (
	"bytes"

	"github.com/consensys/go-tracevm/pkg/trace"
)

// MajorVersion of the binary file format.  No matter what version, a file
// always begins with the LTVTRACE identifier followed by the version pair;
// what follows after that is determined by the major version.
const MajorVersion uint16 = 1

// MinorVersion of the binary file format.  The expected interpretation is
// that older versions are compatible with newer ones, but not vice-versa.
const MinorVersion uint16 = 0

// LTVTRACE is used as the file identifier for the binary format.  This just
// helps us distinguish actual trace files from corrupted files.
var LTVTRACE = [8]byte{'l', 't', 'v', 't', 'r', 'a', 'c', 'e'}

// Header identifies and versions a binary trace file.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
}

// IsCompatible determines whether a file with this header can be read by
// this version of the format.
func (p *Header) IsCompatible() bool {
	return p.Identifier == LTVTRACE &&
		p.MajorVersion == MajorVersion &&
		p.MinorVersion <= MinorVersion
}

// TraceFile is a programmatic representation of an underlying trace file.
type TraceFile struct {
	// Header for the binary file
	Header Header
	// Column data
	Trace *trace.ArrayTrace
}

// NewTraceFile wraps a trace with the default header for the currently
// supported version.
func NewTraceFile(tr *trace.ArrayTrace) TraceFile {
	return TraceFile{
		Header{LTVTRACE, MajorVersion, MinorVersion},
		tr,
	}
}

// IsTraceFile checks whether the given data begins with the expected
// "ltvtrace" identifier.
func IsTraceFile(data []byte) bool {
	var (
		identifier [8]byte
		buffer     = bytes.NewBuffer(data)
	)
	//
	if _, err := buffer.Read(identifier[:]); err != nil {
		return false
	}
	//
	return identifier == LTVTRACE
}
