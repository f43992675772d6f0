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

// Package trace turns an execution record into the column trace consumed by
// the downstream proof pipeline.  Every machine fact of every executed step
// is embedded as a field element in a named column, so the pipeline never
// needs to re-execute or re-decode anything.
package trace

import (
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// ArrayTrace is a set of named columns of field elements, stored directly as
// arrays.  Column names are unique; column order is the insertion order and
// is preserved by the binary file format.
type ArrayTrace struct {
	// Holds the maximum height of any column in the trace
	height uint
	// The columns of this trace, in insertion order.
	columns []*Column
}

// EmptyArrayTrace constructs an empty trace into which column data can be
// added.
func EmptyArrayTrace() *ArrayTrace {
	return &ArrayTrace{}
}

// Width returns the number of columns in this trace.
func (p *ArrayTrace) Width() uint {
	return uint(len(p.columns))
}

// Height returns the maximum height of any column within this trace.
func (p *ArrayTrace) Height() uint {
	return p.height
}

// HasColumn checks whether the trace has a given column or not.
func (p *ArrayTrace) HasColumn(name string) bool {
	return p.ColumnByName(name) != nil
}

// AddColumn adds a new column of data to this trace.  Column names must be
// unique, so adding a second column under an existing name panics.
func (p *ArrayTrace) AddColumn(name string, data []fr.Element) {
	if p.HasColumn(name) {
		panic("column already exists")
	}
	//
	p.columns = append(p.columns, &Column{name, data})
	//
	if uint(len(data)) > p.height {
		p.height = uint(len(data))
	}
}

// Columns returns the set of columns in this trace, in insertion order.
func (p *ArrayTrace) Columns() []*Column {
	return p.columns
}

// Column returns the ith column in this trace.
func (p *ArrayTrace) Column(index uint) *Column {
	return p.columns[index]
}

// ColumnByName looks up a column based on its name, returning nil when no
// such column exists.
func (p *ArrayTrace) ColumnByName(name string) *Column {
	for _, c := range p.columns {
		if c.name == name {
			return c
		}
	}
	//
	return nil
}

func (p *ArrayTrace) String() string {
	// Use string builder to try and make this vaguely efficient.
	var id strings.Builder
	//
	id.WriteString("{")
	//
	for i, column := range p.columns {
		if i != 0 {
			id.WriteString(",")
		}
		//
		id.WriteString(column.name)
		id.WriteString("={")
		//
		for j, jth := range column.data {
			if j != 0 {
				id.WriteString(",")
			}
			//
			id.WriteString(jth.String())
		}
		//
		id.WriteString("}")
	}
	//
	id.WriteString("}")
	//
	return id.String()
}

// ===================================================================
// Column
// ===================================================================

// Column is a single named column of field elements within a trace.
type Column struct {
	// Holds the name of this column
	name string
	// Holds the raw data making up this column
	data []fr.Element
}

// Name returns the name of this column.
func (p *Column) Name() string {
	return p.name
}

// Height returns the number of rows in this column.
func (p *Column) Height() uint {
	return uint(len(p.data))
}

// Data returns the data for this column.
func (p *Column) Data() []fr.Element {
	return p.data
}

// Get the value at a given row in this column.
func (p *Column) Get(row uint) fr.Element {
	return p.data[row]
}
