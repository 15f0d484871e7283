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
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	p, release := newCalculatedProfile(t)
	defer release()

	c := NewCollector(p, "clwrap")
	registry := prometheus.NewRegistry()
	require.Nil(t, registry.Register(c))

	expected := `
# HELP clwrap_profile_events_seconds Total device time of all profiled events.
# TYPE clwrap_profile_events_seconds gauge
clwrap_profile_events_seconds 7e-08
# HELP clwrap_profile_events_effective_seconds Total device time of all profiled events, not counting overlaps twice.
# TYPE clwrap_profile_events_effective_seconds gauge
clwrap_profile_events_effective_seconds 5.3e-08
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"clwrap_profile_events_seconds", "clwrap_profile_events_effective_seconds")
	require.Nil(t, err)

	expected = `
# HELP clwrap_profile_event_seconds Aggregate device time of the events with a given name.
# TYPE clwrap_profile_event_seconds gauge
clwrap_profile_event_seconds{event="Event1"} 3.6e-08
clwrap_profile_event_seconds{event="Event2"} 4e-09
clwrap_profile_event_seconds{event="Event3"} 1.3e-08
clwrap_profile_event_seconds{event="Event4"} 6e-09
clwrap_profile_event_seconds{event="Event5"} 1.1e-08
`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected), "clwrap_profile_event_seconds")
	require.Nil(t, err)

	require.Equal(t, 5, testutil.CollectAndCount(c, "clwrap_profile_event_relative_time"))
	require.Equal(t, 6, testutil.CollectAndCount(c, "clwrap_profile_overlap_seconds"))
}

func TestCollectorBeforeCalc(t *testing.T) {
	p := New()
	c := NewCollector(p, "clwrap")
	require.Equal(t, 0, testutil.CollectAndCount(c))
}
