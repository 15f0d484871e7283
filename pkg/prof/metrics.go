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
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the results of a calculated profile as Prometheus
// gauges. It collects nothing until the profile is calculated.
type Collector struct {
	prof *Profile

	eventSeconds     *prometheus.Desc
	eventRelative    *prometheus.Desc
	overlapSeconds   *prometheus.Desc
	totalSeconds     *prometheus.Desc
	effectiveSeconds *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for p with metric names prefixed by
// namespace.
func NewCollector(p *Profile, namespace string) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "profile", n)
	}
	return &Collector{
		prof: p,
		eventSeconds: prometheus.NewDesc(name("event_seconds"),
			"Aggregate device time of the events with a given name.", []string{"event"}, nil),
		eventRelative: prometheus.NewDesc(name("event_relative_time"),
			"Fraction of the total device time spent in the events with a given name.", []string{"event"}, nil),
		overlapSeconds: prometheus.NewDesc(name("overlap_seconds"),
			"Time during which events with two given names ran simultaneously.", []string{"event1", "event2"}, nil),
		totalSeconds: prometheus.NewDesc(name("events_seconds"),
			"Total device time of all profiled events.", nil, nil),
		effectiveSeconds: prometheus.NewDesc(name("events_effective_seconds"),
			"Total device time of all profiled events, not counting overlaps twice.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.eventSeconds
	ch <- c.eventRelative
	ch <- c.overlapSeconds
	ch <- c.totalSeconds
	ch <- c.effectiveSeconds
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	p := c.prof
	if !p.calculated {
		return
	}
	for _, agg := range p.aggs {
		ch <- prometheus.MustNewConstMetric(c.eventSeconds, prometheus.GaugeValue, seconds(agg.AbsoluteTime), agg.EventName)
		ch <- prometheus.MustNewConstMetric(c.eventRelative, prometheus.GaugeValue, agg.RelativeTime, agg.EventName)
	}
	for _, o := range p.overlaps {
		ch <- prometheus.MustNewConstMetric(c.overlapSeconds, prometheus.GaugeValue, seconds(o.Duration), o.Event1Name, o.Event2Name)
	}
	ch <- prometheus.MustNewConstMetric(c.totalSeconds, prometheus.GaugeValue, seconds(p.totalEventsTime))
	ch <- prometheus.MustNewConstMetric(c.effectiveSeconds, prometheus.GaugeValue, seconds(p.totalEventsEffTime))
}
