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
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Profile aggregates the timing of the events produced by a set of named
// queues.
type Profile struct {
	queues []namedQueue

	calculated bool
	nameIDs    map[string]int
	names      []string

	instants []Instant
	infos    []Info
	aggs     []Agg
	overlaps []Overlap

	startTime          uint64
	totalEventsTime    uint64
	totalEventsEffTime uint64

	timer         timer
	exportOptions ExportOptions
}

type namedQueue struct {
	name  string
	queue *ccl.Queue
}

// Agg holds the aggregate device time of all events sharing a name.
type Agg struct {
	EventName string
	// AbsoluteTime is in nanoseconds.
	AbsoluteTime uint64
	// RelativeTime is the fraction of the total events time.
	RelativeTime float64
}

// Info holds the timestamps of a single event.
type Info struct {
	EventName   string
	CommandType cl.CommandType
	QueueName   string
	TQueued     uint64
	TSubmit     uint64
	TStart      uint64
	TEnd        uint64
}

// InstantType tells whether an Instant marks the start or the end of an
// event.
type InstantType int

const (
	InstantStart InstantType = iota
	InstantEnd
)

// Instant is the start or end of an event.
type Instant struct {
	EventName string
	QueueName string
	// EventID identifies the event within the profile, starting at 1.
	EventID uint
	Instant uint64
	Type    InstantType
}

// Overlap holds the time during which events with two given names were
// running simultaneously. Event1Name is interned before Event2Name.
type Overlap struct {
	Event1Name string
	Event2Name string
	// Duration is in nanoseconds.
	Duration uint64
}

// Option configures a Profile.
type Option func(*Profile)

// WithExportOptions sets the options used by Export.
func WithExportOptions(opts ExportOptions) Option {
	return func(p *Profile) {
		p.exportOptions = opts
	}
}

// New creates an empty profile.
func New(opts ...Option) *Profile {
	p := &Profile{
		startTime:     math.MaxUint64,
		exportOptions: DefaultExportOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddQueue registers q under name. A queue already registered under the
// same name is replaced. The profile holds a reference to q until Destroy.
func (p *Profile) AddQueue(name string, q *ccl.Queue) error {
	if p.calculated {
		return ccl.NewError(ccl.CodeOther, "unable to add queue '%s': profile already calculated", name)
	}

	q.Ref()
	for i, nq := range p.queues {
		if nq.name == name {
			log.Warnf("Profile already contains a queue named '%s'. The existing queue will be replaced.", name)
			nq.queue.Destroy()
			p.queues[i].queue = q
			return nil
		}
	}
	p.queues = append(p.queues, namedQueue{name, q})
	return nil
}

// Destroy releases the queues registered with the profile.
func (p *Profile) Destroy() {
	for _, nq := range p.queues {
		nq.queue.Destroy()
	}
	p.queues = nil
}

// Calculated reports whether Calc completed.
func (p *Profile) Calculated() bool {
	return p.calculated
}

// Agg returns the aggregate for events named name, or nil when there is
// none or the profile was not calculated.
func (p *Profile) Agg(name string) *Agg {
	for i := range p.aggs {
		if p.aggs[i].EventName == name {
			return &p.aggs[i]
		}
	}
	return nil
}

// NumEvents returns the number of events harvested by Calc.
func (p *Profile) NumEvents() int {
	return len(p.infos)
}

// StartTime returns the earliest start instant of all timed events.
func (p *Profile) StartTime() uint64 {
	return p.startTime
}

// TotalEventsTime returns the sum of the device times of all events, in
// nanoseconds.
func (p *Profile) TotalEventsTime() uint64 {
	return p.totalEventsTime
}

// TotalEventsEffTime returns TotalEventsTime minus the time during which
// events overlapped.
func (p *Profile) TotalEventsEffTime() uint64 {
	return p.totalEventsEffTime
}

func (p *Profile) ExportOptions() ExportOptions {
	return p.exportOptions
}

func (p *Profile) SetExportOptions(opts ExportOptions) {
	p.exportOptions = opts
}
