/*
 * Copyright (c) 2021, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package prof

import (
	"cmp"
	"slices"
)

// Sort selects how an iterator orders its items. It combines a criteria,
// held in the high nibble, with an order, held in the low bit.
type Sort int

const (
	SortAsc  Sort = 0x0
	SortDesc Sort = 0x1
)

// Aggregate criteria.
const (
	AggSortName Sort = 0x00
	AggSortTime Sort = 0x10
)

// Event info criteria.
const (
	InfoSortNameEvent Sort = 0x20
	InfoSortNameQueue Sort = 0x30
	InfoSortTQueued   Sort = 0x40
	InfoSortTSubmit   Sort = 0x50
	InfoSortTStart    Sort = 0x60
	InfoSortTEnd      Sort = 0x70
)

// Instant criteria. InstSortID orders by event ID, with the start of an
// event before its end.
const (
	InstSortInstant Sort = 0x80
	InstSortID      Sort = 0x90
)

// Overlap criteria. OverlapSortName orders by the first event name, then by
// the second.
const (
	OverlapSortName     Sort = 0xa0
	OverlapSortDuration Sort = 0xb0
)

func (s Sort) criteria() Sort {
	return s & 0xF0
}

func (s Sort) desc() bool {
	return s&0x0F == SortDesc
}

// ordered applies the order of s to a comparison result.
func (s Sort) ordered(c int) int {
	if s.desc() {
		return -c
	}
	return c
}

// Iterator walks a snapshot of sorted profile items.
type Iterator[T any] struct {
	items []T
	pos   int
}

// Next returns the next item, or nil when there are no more.
func (it *Iterator[T]) Next() *T {
	if it.pos >= len(it.items) {
		return nil
	}
	item := &it.items[it.pos]
	it.pos++
	return item
}

// Len returns the number of items of the snapshot.
func (it *Iterator[T]) Len() int {
	return len(it.items)
}

func newIterator[T any](items []T, compare func(a, b T) int) *Iterator[T] {
	snapshot := slices.Clone(items)
	slices.SortStableFunc(snapshot, compare)
	return &Iterator[T]{items: snapshot}
}

// IterAgg iterates over the aggregates sorted by AggSortName or AggSortTime.
func (p *Profile) IterAgg(sort Sort) *Iterator[Agg] {
	return newIterator(p.aggs, func(a, b Agg) int {
		switch sort.criteria() {
		case AggSortName:
			return sort.ordered(cmp.Compare(a.EventName, b.EventName))
		case AggSortTime:
			return sort.ordered(cmp.Compare(a.AbsoluteTime, b.AbsoluteTime))
		}
		return 0
	})
}

// IterInfo iterates over the event infos sorted by one of the InfoSort
// criteria.
func (p *Profile) IterInfo(sort Sort) *Iterator[Info] {
	return newIterator(p.infos, func(a, b Info) int {
		switch sort.criteria() {
		case InfoSortNameEvent:
			return sort.ordered(cmp.Compare(a.EventName, b.EventName))
		case InfoSortNameQueue:
			return sort.ordered(cmp.Compare(a.QueueName, b.QueueName))
		case InfoSortTQueued:
			return sort.ordered(cmp.Compare(a.TQueued, b.TQueued))
		case InfoSortTSubmit:
			return sort.ordered(cmp.Compare(a.TSubmit, b.TSubmit))
		case InfoSortTStart:
			return sort.ordered(cmp.Compare(a.TStart, b.TStart))
		case InfoSortTEnd:
			return sort.ordered(cmp.Compare(a.TEnd, b.TEnd))
		}
		return 0
	})
}

// IterInst iterates over the event instants sorted by InstSortInstant or
// InstSortID.
func (p *Profile) IterInst(sort Sort) *Iterator[Instant] {
	return newIterator(p.instants, instantCompare(sort))
}

// IterOverlap iterates over the overlaps sorted by OverlapSortName or
// OverlapSortDuration.
func (p *Profile) IterOverlap(sort Sort) *Iterator[Overlap] {
	return newIterator(p.overlaps, func(a, b Overlap) int {
		switch sort.criteria() {
		case OverlapSortName:
			return sort.ordered(cmp.Or(
				cmp.Compare(a.Event1Name, b.Event1Name),
				cmp.Compare(a.Event2Name, b.Event2Name),
			))
		case OverlapSortDuration:
			return sort.ordered(cmp.Compare(a.Duration, b.Duration))
		}
		return 0
	})
}

func instantCompare(sort Sort) func(a, b Instant) int {
	return func(a, b Instant) int {
		switch sort.criteria() {
		case InstSortInstant:
			return sort.ordered(cmp.Compare(a.Instant, b.Instant))
		case InstSortID:
			return sort.ordered(cmp.Or(
				cmp.Compare(a.EventID, b.EventID),
				cmp.Compare(a.Type, b.Type),
			))
		}
		return 0
	}
}

func sortInstants(instants []Instant, sort Sort) {
	slices.SortStableFunc(instants, instantCompare(sort))
}
