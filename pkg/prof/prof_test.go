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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

type testEvent struct {
	name  string
	queue string
	start uint64
	end   uint64
}

// overlappingEvents are queued in table order.
var overlappingEvents = []testEvent{
	{"Event1", "Q1", 10, 15},
	{"Event2", "Q1", 16, 20},
	{"Event3", "Q1", 17, 30},
	{"Event4", "Q3", 19, 25},
	{"Event5", "Q1", 29, 40},
	{"Event1", "Q2", 35, 45},
	{"Event1", "Q1", 68, 69},
	{"Event1", "Q3", 50, 70},
}

type testSetup struct {
	drv    *cl.MockDriver
	ctx    *ccl.Context
	queues map[string]*ccl.Queue
}

func newTestSetup(t *testing.T, properties cl.QueueProperties, queueNames ...string) *testSetup {
	drv := cl.NewMockDriverOnWorkstation()
	ctx, err := ccl.NewGPUContext(drv)
	require.Nil(t, err)
	dev, err := ctx.Device(0)
	require.Nil(t, err)

	s := &testSetup{drv: drv, ctx: ctx, queues: make(map[string]*ccl.Queue)}
	for _, name := range queueNames {
		q, err := ccl.NewQueue(ctx, dev, properties)
		require.Nil(t, err)
		s.queues[name] = q
	}
	return s
}

// enqueue produces one marker per event, with timestamps overridden so that
// the queued instant of event i is i+1.
func (s *testSetup) enqueue(t *testing.T, events []testEvent) []*ccl.Event {
	var produced []*ccl.Event
	for i, ev := range events {
		e, err := s.queues[ev.queue].EnqueueMarker(nil)
		require.Nil(t, err)
		e.SetName(ev.name)
		ret := s.drv.SetEventTimestamps(e.Handle(), uint64(i+1), uint64(i+1), ev.start, ev.end)
		require.Equal(t, cl.SUCCESS, ret)
		produced = append(produced, e)
	}
	return produced
}

func (s *testSetup) destroy() {
	for _, q := range s.queues {
		q.Destroy()
	}
	s.ctx.Destroy()
}

// newCalculatedProfile returns a calculated profile of overlappingEvents
// and a function releasing everything.
func newCalculatedProfile(t *testing.T, opts ...Option) (*Profile, func()) {
	s := newTestSetup(t, cl.QUEUE_PROFILING_ENABLE, "Q1", "Q2", "Q3")
	s.enqueue(t, overlappingEvents)

	p := New(opts...)
	for _, name := range []string{"Q1", "Q2", "Q3"} {
		require.Nil(t, p.AddQueue(name, s.queues[name]))
	}
	require.Nil(t, p.Calc())

	return p, func() {
		p.Destroy()
		s.destroy()
	}
}

func TestCalcAggregatesAndOverlaps(t *testing.T) {
	s := newTestSetup(t, cl.QUEUE_PROFILING_ENABLE, "Q1", "Q2", "Q3")
	s.enqueue(t, overlappingEvents)

	p := New()
	for _, name := range []string{"Q1", "Q2", "Q3"} {
		require.Nil(t, p.AddQueue(name, s.queues[name]))
		require.Equal(t, 2, s.queues[name].RefCount())
	}
	require.False(t, p.Calculated())
	require.Nil(t, p.Calc())
	require.True(t, p.Calculated())

	require.Equal(t, 8, p.NumEvents())
	require.Equal(t, uint64(10), p.StartTime())
	require.Equal(t, uint64(70), p.TotalEventsTime())
	require.Equal(t, uint64(53), p.TotalEventsEffTime())

	testCases := []struct {
		description string
		name        string
		absolute    uint64
		relative    float64
	}{
		{"Event1", "Event1", 36, 36.0 / 70},
		{"Event2", "Event2", 4, 0.05714},
		{"Event3", "Event3", 13, 0.18571},
		{"Event4", "Event4", 6, 0.08571},
		{"Event5", "Event5", 11, 0.15714},
	}
	relativeSum := 0.0
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			agg := p.Agg(tc.name)
			require.NotNil(t, agg)
			require.Equal(t, tc.absolute, agg.AbsoluteTime)
			require.InDelta(t, tc.relative, agg.RelativeTime, 1e-5)
		})
		relativeSum += p.Agg(tc.name).RelativeTime
	}
	require.InDelta(t, 1.0, relativeSum, 1e-9)
	require.Nil(t, p.Agg("Event6"))

	var overlaps []Overlap
	it := p.IterOverlap(OverlapSortName | SortAsc)
	for o := it.Next(); o != nil; o = it.Next() {
		overlaps = append(overlaps, *o)
	}
	expected := []Overlap{
		{"Event1", "Event1", 1},
		{"Event1", "Event5", 5},
		{"Event2", "Event3", 3},
		{"Event2", "Event4", 1},
		{"Event3", "Event4", 6},
		{"Event3", "Event5", 1},
	}
	require.Equal(t, expected, overlaps)

	for _, q := range s.queues {
		require.Zero(t, q.NumEvents())
	}

	p.Destroy()
	for _, q := range s.queues {
		require.Equal(t, 1, q.RefCount())
	}
	s.destroy()
	require.True(t, ccl.Memcheck())
}

func TestCalcErrors(t *testing.T) {
	s := newTestSetup(t, 0, "plain")
	defer s.destroy()
	s.enqueue(t, []testEvent{{"Event1", "plain", 10, 20}})

	p := New()
	defer p.Destroy()

	require.ErrorIs(t, p.Calc(), ccl.ErrArgs)

	require.Nil(t, p.AddQueue("plain", s.queues["plain"]))
	require.ErrorIs(t, p.Calc(), ccl.ErrOther)
	require.False(t, p.Calculated())

	_, err := p.Summary(AggSortName, OverlapSortName)
	require.ErrorIs(t, err, ccl.ErrOther)
	require.ErrorIs(t, p.Export(failingWriter{}), ccl.ErrOther)

	calculated, release := newCalculatedProfile(t)
	defer release()
	require.ErrorIs(t, calculated.Calc(), ccl.ErrOther)
	require.ErrorIs(t, calculated.AddQueue("plain", s.queues["plain"]), ccl.ErrOther)
}

func TestAddQueueReplacesSameName(t *testing.T) {
	s := newTestSetup(t, cl.QUEUE_PROFILING_ENABLE, "first", "second")
	defer s.destroy()
	s.enqueue(t, []testEvent{
		{"Dropped", "first", 10, 20},
		{"Kept", "second", 30, 40},
	})

	p := New()
	defer p.Destroy()

	require.Nil(t, p.AddQueue("Q", s.queues["first"]))
	require.Equal(t, 2, s.queues["first"].RefCount())
	require.Nil(t, p.AddQueue("Q", s.queues["second"]))
	require.Equal(t, 1, s.queues["first"].RefCount())
	require.Equal(t, 2, s.queues["second"].RefCount())

	require.Nil(t, p.Calc())
	require.Equal(t, 1, p.NumEvents())
	require.Nil(t, p.Agg("Dropped"))
	require.Equal(t, uint64(10), p.Agg("Kept").AbsoluteTime)
	require.Equal(t, 1, s.queues["first"].NumEvents())
}

func TestUntimedAndZeroDurationEvents(t *testing.T) {
	s := newTestSetup(t, cl.QUEUE_PROFILING_ENABLE, "Q1")
	defer s.destroy()
	events := s.enqueue(t, []testEvent{
		{"Timed", "Q1", 100, 150},
		{"Untimed", "Q1", 160, 170},
		{"Instant", "Q1", 180, 180},
	})
	require.Equal(t, cl.SUCCESS, s.drv.SetEventUntimed(events[1].Handle()))

	p := New()
	defer p.Destroy()
	require.Nil(t, p.AddQueue("Q1", s.queues["Q1"]))
	require.Nil(t, p.Calc())

	require.Equal(t, 2, p.NumEvents())
	require.Nil(t, p.Agg("Untimed"))
	require.Equal(t, uint64(0), p.Agg("Instant").AbsoluteTime)
	require.Equal(t, 1.0, p.Agg("Timed").RelativeTime)
	require.Equal(t, 2, p.IterInst(InstSortID).Len())
	require.Equal(t, uint64(100), p.StartTime())
	require.Equal(t, p.TotalEventsTime(), p.TotalEventsEffTime())
}

func TestIterators(t *testing.T) {
	p, release := newCalculatedProfile(t)
	defer release()

	aggNames := func(sort Sort) []string {
		var names []string
		it := p.IterAgg(sort)
		for agg := it.Next(); agg != nil; agg = it.Next() {
			names = append(names, agg.EventName)
		}
		return names
	}
	require.Equal(t, []string{"Event1", "Event3", "Event5", "Event4", "Event2"}, aggNames(AggSortTime|SortDesc))
	require.Equal(t, []string{"Event2", "Event4", "Event5", "Event3", "Event1"}, aggNames(AggSortTime|SortAsc))
	require.Equal(t, []string{"Event1", "Event2", "Event3", "Event4", "Event5"}, aggNames(AggSortName|SortAsc))
	require.Equal(t, []string{"Event5", "Event4", "Event3", "Event2", "Event1"}, aggNames(AggSortName|SortDesc))

	var starts []uint64
	infos := p.IterInfo(InfoSortTStart | SortAsc)
	require.Equal(t, 8, infos.Len())
	for info := infos.Next(); info != nil; info = infos.Next() {
		starts = append(starts, info.TStart)
		require.Equal(t, cl.COMMAND_MARKER, info.CommandType)
	}
	require.Equal(t, []uint64{10, 16, 17, 19, 29, 35, 50, 68}, starts)

	info := p.IterInfo(InfoSortNameQueue | SortDesc).Next()
	require.Equal(t, "Q3", info.QueueName)
	info = p.IterInfo(InfoSortTEnd | SortDesc).Next()
	require.Equal(t, uint64(70), info.TEnd)
	info = p.IterInfo(InfoSortTQueued | SortDesc).Next()
	require.Equal(t, uint64(8), info.TQueued)

	instants := p.IterInst(InstSortID | SortAsc)
	require.Equal(t, 16, instants.Len())
	for i := uint(1); i <= 8; i++ {
		start, end := instants.Next(), instants.Next()
		require.Equal(t, i, start.EventID)
		require.Equal(t, InstantStart, start.Type)
		require.Equal(t, i, end.EventID)
		require.Equal(t, InstantEnd, end.Type)
	}
	require.Nil(t, instants.Next())

	last := p.IterInst(InstSortID | SortDesc).Next()
	require.Equal(t, uint(8), last.EventID)
	require.Equal(t, InstantEnd, last.Type)

	first := p.IterInst(InstSortInstant | SortAsc).Next()
	require.Equal(t, uint64(10), first.Instant)

	longest := p.IterOverlap(OverlapSortDuration | SortDesc).Next()
	require.Equal(t, Overlap{"Event3", "Event4", 6}, *longest)

	// Iterators work on snapshots.
	snapshot := p.IterAgg(AggSortName | SortAsc)
	p.IterAgg(AggSortTime | SortDesc)
	require.Equal(t, "Event1", snapshot.Next().EventName)
}

func TestTimer(t *testing.T) {
	p := New()
	require.Zero(t, p.Elapsed())

	p.Start()
	p.Stop()
	elapsed := p.Elapsed()
	require.GreaterOrEqual(t, elapsed.Nanoseconds(), int64(0))
	require.Equal(t, elapsed, p.Elapsed())
}
