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
package lt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-tracevm/pkg/trace"
)

// FromBytes parses a byte array representing a trace file, or produces an
// error if the file is malformed or written by an incompatible version.
func FromBytes(data []byte) (TraceFile, error) {
	var (
		tf  TraceFile
		buf = bytes.NewReader(data)
	)
	//
	if err := readHeader(&tf.Header, buf); err != nil {
		return tf, err
	}
	//
	if !tf.Header.IsCompatible() {
		return tf, fmt.Errorf("incompatible trace file (was v%d.%d, expected v%d.%d)",
			tf.Header.MajorVersion, tf.Header.MinorVersion, MajorVersion, MinorVersion)
	}
	// Read column directory
	var ncols uint32
	if err := binary.Read(buf, binary.BigEndian, &ncols); err != nil {
		return tf, fmt.Errorf("malformed trace file: %w", err)
	}
	//
	var (
		names   = make([]string, ncols)
		heights = make([]uint32, ncols)
		total   uint64
	)
	//
	for i := range names {
		var err error
		//
		if names[i], heights[i], err = readColumnHeader(buf); err != nil {
			return tf, err
		}
		//
		total += uint64(heights[i])
	}
	// The remaining bytes must be exactly the declared column data.
	if uint64(buf.Len()) != total*fr.Bytes {
		return tf, fmt.Errorf("malformed trace file: %d data bytes for %d elements", buf.Len(), total)
	}
	// Read column data
	var (
		tr    = trace.EmptyArrayTrace()
		chunk [fr.Bytes]byte
	)
	//
	for i := range names {
		if tr.HasColumn(names[i]) {
			return tf, fmt.Errorf("malformed trace file: duplicate column %q", names[i])
		}
		//
		column := make([]fr.Element, heights[i])
		//
		for j := range column {
			if _, err := io.ReadFull(buf, chunk[:]); err != nil {
				return tf, fmt.Errorf("malformed trace file: %w", err)
			}
			//
			column[j].SetBytes(chunk[:])
		}
		//
		tr.AddColumn(names[i], column)
	}
	//
	tf.Trace = tr
	//
	return tf, nil
}

// readHeader parses and sanity checks the identifying header.
func readHeader(header *Header, buf *bytes.Reader) error {
	if _, err := io.ReadFull(buf, header.Identifier[:]); err != nil {
		return fmt.Errorf("malformed trace file: %w", err)
	}
	//
	if err := binary.Read(buf, binary.BigEndian, &header.MajorVersion); err != nil {
		return fmt.Errorf("malformed trace file: %w", err)
	}
	//
	if err := binary.Read(buf, binary.BigEndian, &header.MinorVersion); err != nil {
		return fmt.Errorf("malformed trace file: %w", err)
	}
	//
	return nil
}

// readColumnHeader parses one directory entry: the column name and height.
func readColumnHeader(buf *bytes.Reader) (string, uint32, error) {
	var nameLen uint16
	//
	if err := binary.Read(buf, binary.BigEndian, &nameLen); err != nil {
		return "", 0, fmt.Errorf("malformed trace file: %w", err)
	}
	//
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(buf, name); err != nil {
		return "", 0, fmt.Errorf("malformed trace file: %w", err)
	}
	//
	var height uint32
	if err := binary.Read(buf, binary.BigEndian, &height); err != nil {
		return "", 0, fmt.Errorf("malformed trace file: %w", err)
	}
	//
	return string(name), height, nil
}
