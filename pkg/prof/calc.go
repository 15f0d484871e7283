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
	"errors"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Calc harvests the events of every registered queue and computes the
// aggregate times and overlaps. Harvested events are released from their
// queues. Calc may only succeed once per profile.
func (p *Profile) Calc() error {
	if p.calculated {
		return ccl.NewError(ccl.CodeOther, "profile already calculated")
	}
	if len(p.queues) == 0 {
		return ccl.NewError(ccl.CodeArgs, "profile has no queues")
	}

	infos, err := p.harvest()
	if err != nil {
		return err
	}

	// Event IDs follow the order in which commands were queued.
	slices.SortStableFunc(infos, func(a, b Info) int {
		return cmp.Compare(a.TQueued, b.TQueued)
	})
	p.addEvents(infos)
	p.calcAggs()
	p.calcOverlaps()

	p.calculated = true
	return nil
}

// harvest collects the timing of the events of every queue, in queue
// registration order.
func (p *Profile) harvest() ([]Info, error) {
	var infos []Info
	for _, nq := range p.queues {
		props, err := nq.queue.Properties()
		if err != nil {
			return nil, err
		}
		if props&cl.QUEUE_PROFILING_ENABLE == 0 {
			return nil, ccl.NewError(ccl.CodeOther, "the '%s' queue does not have profiling enabled", nq.name)
		}

		it := nq.queue.EventIterator()
		for e := it.Next(); e != nil; e = it.Next() {
			info, err := eventInfo(nq.name, e)
			if errors.Is(err, cl.PROFILING_INFO_NOT_AVAILABLE) || errors.Is(err, ccl.ErrInfoUnavailable) {
				log.Infof("The '%s' event does not have profiling info", info.EventName)
				continue
			}
			if err != nil {
				return nil, err
			}
			infos = append(infos, info)
		}
	}

	for _, nq := range p.queues {
		nq.queue.GarbageCollect()
	}
	return infos, nil
}

func eventInfo(queueName string, e *ccl.Event) (Info, error) {
	var err error
	info := Info{QueueName: queueName}

	if info.EventName, err = e.Name(); err != nil {
		return info, err
	}
	if info.TQueued, err = e.ProfilingInfo(cl.PROFILING_COMMAND_QUEUED); err != nil {
		return info, err
	}
	if info.TSubmit, err = e.ProfilingInfo(cl.PROFILING_COMMAND_SUBMIT); err != nil {
		return info, err
	}
	if info.TStart, err = e.ProfilingInfo(cl.PROFILING_COMMAND_START); err != nil {
		return info, err
	}
	if info.TEnd, err = e.ProfilingInfo(cl.PROFILING_COMMAND_END); err != nil {
		return info, err
	}
	if info.CommandType, err = e.CommandType(); err != nil {
		return info, err
	}
	return info, nil
}

// addEvents interns event names and creates the start and end instants of
// every event that used device time.
func (p *Profile) addEvents(infos []Info) {
	p.infos = infos
	p.nameIDs = make(map[string]int)
	for i, info := range infos {
		if _, exists := p.nameIDs[info.EventName]; !exists {
			p.nameIDs[info.EventName] = len(p.names)
			p.names = append(p.names, info.EventName)
		}

		if info.TEnd <= info.TStart {
			log.Infof("Event '%s' did not use device time. Its start and end instants will not be added to the list of event instants.", info.EventName)
			continue
		}

		id := uint(i + 1)
		p.instants = append(p.instants,
			Instant{info.EventName, info.QueueName, id, info.TStart, InstantStart},
			Instant{info.EventName, info.QueueName, id, info.TEnd, InstantEnd},
		)
		p.startTime = min(p.startTime, info.TStart)
	}
	if len(p.instants) == 0 {
		p.startTime = 0
	}
}

func (p *Profile) calcAggs() {
	p.aggs = make([]Agg, len(p.names))
	for i, name := range p.names {
		p.aggs[i].EventName = name
	}

	sortInstants(p.instants, InstSortID|SortAsc)
	for i := 0; i+1 < len(p.instants); i += 2 {
		start, end := p.instants[i], p.instants[i+1]
		d := end.Instant - start.Instant
		p.aggs[p.nameIDs[start.EventName]].AbsoluteTime += d
		p.totalEventsTime += d
	}

	if p.totalEventsTime == 0 {
		return
	}
	for i := range p.aggs {
		p.aggs[i].RelativeTime = float64(p.aggs[i].AbsoluteTime) / float64(p.totalEventsTime)
	}
}

type eventPair struct {
	first, second uint
}

func pairOf(a, b uint) eventPair {
	return eventPair{min(a, b), max(a, b)}
}

// calcOverlaps sweeps the instants in time order. Each event starting while
// others run opens an overlap with each of them; the overlap closes when
// either event ends.
func (p *Profile) calcOverlaps() {
	n := len(p.names)
	matrix := make([]uint64, n*n)
	var totalOverlap uint64

	// occurring maps the ID of each running event to its name ID.
	occurring := make(map[uint]int)
	opened := make(map[eventPair]uint64)

	sortInstants(p.instants, InstSortInstant|SortAsc)
	for _, inst := range p.instants {
		nameID := p.nameIDs[inst.EventName]
		if inst.Type == InstantStart {
			for id := range occurring {
				opened[pairOf(inst.EventID, id)] = inst.Instant
			}
			occurring[inst.EventID] = nameID
			continue
		}

		delete(occurring, inst.EventID)
		for id, otherNameID := range occurring {
			pair := pairOf(inst.EventID, id)
			overlap := inst.Instant - opened[pair]
			delete(opened, pair)
			matrix[min(nameID, otherNameID)*n+max(nameID, otherNameID)] += overlap
			totalOverlap += overlap
		}
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if d := matrix[i*n+j]; d > 0 {
				p.overlaps = append(p.overlaps, Overlap{p.names[i], p.names[j], d})
			}
		}
	}
	p.totalEventsEffTime = p.totalEventsTime - totalOverlap
}
