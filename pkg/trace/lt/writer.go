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
	"io"
)

// ToBytes writes a given trace file as an array of bytes.
func ToBytes(tf TraceFile) ([]byte, error) {
	var buf bytes.Buffer
	//
	if err := Write(tf, &buf); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// Write a given trace file to an io.Writer.
func Write(tf TraceFile, w io.Writer) error {
	// Write identifier
	if _, err := w.Write(tf.Header.Identifier[:]); err != nil {
		return err
	}
	// Write version pair
	if err := binary.Write(w, binary.BigEndian, tf.Header.MajorVersion); err != nil {
		return err
	}
	//
	if err := binary.Write(w, binary.BigEndian, tf.Header.MinorVersion); err != nil {
		return err
	}
	// Write column count
	if err := binary.Write(w, binary.BigEndian, uint32(tf.Trace.Width())); err != nil {
		return err
	}
	// Write column directory
	for _, column := range tf.Trace.Columns() {
		name := []byte(column.Name())
		//
		if err := binary.Write(w, binary.BigEndian, uint16(len(name))); err != nil {
			return err
		}
		//
		if _, err := w.Write(name); err != nil {
			return err
		}
		//
		if err := binary.Write(w, binary.BigEndian, uint32(column.Height())); err != nil {
			return err
		}
	}
	// Write column data
	for _, column := range tf.Trace.Columns() {
		for _, element := range column.Data() {
			encoded := element.Bytes()
			//
			if _, err := w.Write(encoded[:]); err != nil {
				return err
			}
		}
	}
	// Done
	return nil
}
