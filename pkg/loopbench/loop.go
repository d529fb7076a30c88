// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package loopbench simulates real-time control loops built on the recycling
// containers and reports their cycle latencies and heap allocations. A loop
// that has warmed up is expected not to allocate at all.
package loopbench

import (
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/recycling"
)

// outlierThreshold is how far, in standard deviations of the simulated
// sensors, a sample may stray from the cycle mean before it is an outlier.
const outlierThreshold = 2.0

type sample struct {
	sensor int
	value  float64
}

type command struct {
	actuator int
	setpoint float64
}

type eventKind uint8

const (
	eventCycle eventKind = iota
	eventOutliers
	eventDroppedOutliers
)

type event struct {
	cycle int64
	kind  eventKind
	value float64
}

// container identifies one of the containers a Loop owns.
type container int

const (
	containerSamples container = iota
	containerHistory
	containerOutliers
	containerCommands
	containerEvents
	numContainers
)

var containerNames = [...]string{
	containerSamples:  "samples",
	containerHistory:  "history",
	containerOutliers: "outliers",
	containerCommands: "commands",
	containerEvents:   "events",
}

func (c container) String() string {
	return containerNames[c]
}

// CycleStats accumulates what a Loop computed.
type CycleStats struct {
	Cycles          int64
	DroppedOutliers int64
	// Median is the median sample of the last cycle.
	Median float64
	// Setpoint is the setpoint staged by the last cycle.
	Setpoint float64
}

// Loop is one simulated control loop. Each cycle it reads a batch of sensor
// samples, median-filters them into a history window, collects outliers,
// stages actuator commands and appends to an event log. All of its state
// lives in recycling containers sized at construction, so after the first
// cycles Cycle does not allocate.
//
// A Loop is not safe for concurrent use.
type Loop struct {
	id  int
	cfg Config
	rng *rand.Rand

	samples  *recycling.ArrayList[sample]
	history  *recycling.Deque[sample]
	outliers *recycling.BoundedArrayList[sample]
	commands *recycling.PreallocatedList[command]
	events   *recycling.LinkedList[event]
	newest   *recycling.Cursor[event]

	byValue recycling.Comparator[sample]
	scratch event
	stats   CycleStats
}

// NewLoop returns a Loop reading its simulated sensors from rng.
func NewLoop(id int, cfg Config, rng *rand.Rand) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Loop{
		id:  id,
		cfg: cfg,
		rng: rng,
		byValue: func(a, b *sample) int {
			switch {
			case a.value < b.value:
				return -1
			case a.value > b.value:
				return 1
			default:
				return 0
			}
		},
	}
	var err error
	if l.samples, err = recycling.NewArrayList(
		recycling.New[sample](), recycling.WithInitialCapacity(cfg.Sensors),
	); err != nil {
		return nil, errors.Wrap(err, "samples")
	}
	// One extra element: the window is trimmed after the newest sample is in.
	if l.history, err = recycling.NewDeque(
		recycling.New[sample](), recycling.Assign[sample],
		recycling.WithInitialCapacity(cfg.HistoryWindow+1),
	); err != nil {
		return nil, errors.Wrap(err, "history")
	}
	if l.outliers, err = recycling.NewBoundedArrayList(
		recycling.New[sample](), cfg.MaxOutliers, recycling.WithInitialCapacity(cfg.MaxOutliers),
	); err != nil {
		return nil, errors.Wrap(err, "outliers")
	}
	if l.commands, err = recycling.NewPreallocatedList(
		recycling.Indexed(func(i int) *command { return &command{actuator: i} }, 0), cfg.Actuators,
	); err != nil {
		return nil, errors.Wrap(err, "commands")
	}
	// Up to three events are appended before the log is trimmed.
	if l.events, err = recycling.NewLinkedList(
		recycling.New[event](), recycling.Assign[event],
		recycling.WithInitialCapacity(cfg.EventLog+3),
	); err != nil {
		return nil, errors.Wrap(err, "events")
	}
	l.newest = l.events.BackwardCursor()
	return l, nil
}

// Stats returns what the loop has computed so far.
func (l *Loop) Stats() CycleStats {
	return l.stats
}

// Cycle runs one control cycle.
func (l *Loop) Cycle() error {
	l.stats.Cycles++

	l.samples.Clear()
	var sum float64
	for i := 0; i < l.cfg.Sensors; i++ {
		s := l.samples.Add()
		s.sensor = i
		s.value = l.rng.NormFloat64()
		sum += s.value
	}
	mean := sum / float64(l.cfg.Sensors)

	l.samples.Sort(l.byValue)
	median, err := l.samples.Get(l.samples.Len() / 2)
	if err != nil {
		return err
	}
	l.stats.Median = median.value
	l.history.AddLastFrom(median)
	if l.history.Len() > l.cfg.HistoryWindow {
		l.history.PollFirst()
	}

	dropped, err := l.collectOutliers(mean)
	if err != nil {
		return err
	}
	l.stats.DroppedOutliers += int64(dropped)

	l.stats.Setpoint = l.historyMean()
	l.commands.Clear()
	for l.commands.Remaining() > 0 {
		c, err := l.commands.Add()
		if err != nil {
			return err
		}
		// Commands keep the actuator they were constructed for.
		c.setpoint = l.stats.Setpoint / float64(c.actuator+1)
	}

	l.logEvent(eventCycle, median.value)
	if n := l.outliers.Len(); n > 0 {
		l.logEvent(eventOutliers, float64(n))
	}
	if dropped > 0 {
		l.logEvent(eventDroppedOutliers, float64(dropped))
	}
	for l.events.Len() > l.cfg.EventLog {
		if err := l.events.RemoveFirst(nil); err != nil {
			return err
		}
	}
	return l.checkEvents()
}

// collectOutliers copies the samples far from mean into the bounded outlier
// list and returns how many did not fit.
func (l *Loop) collectOutliers(mean float64) (dropped int, _ error) {
	l.outliers.Clear()
	for i := 0; i < l.samples.Len(); i++ {
		s, err := l.samples.Get(i)
		if err != nil {
			return 0, err
		}
		if math.Abs(s.value-mean) < outlierThreshold {
			continue
		}
		if l.outliers.Len() == l.outliers.MaxCap() {
			dropped++
			continue
		}
		o, err := l.outliers.Add()
		if err != nil {
			return 0, err
		}
		*o = *s
	}
	return dropped, nil
}

func (l *Loop) historyMean() float64 {
	n := l.history.Len()
	var sum float64
	for i := 0; i < n; i++ {
		s, err := l.history.Get(i)
		if err != nil {
			break
		}
		sum += s.value
	}
	return sum / float64(n)
}

func (l *Loop) logEvent(kind eventKind, value float64) {
	l.scratch = event{cycle: l.stats.Cycles, kind: kind, value: value}
	l.events.AddLast(&l.scratch)
}

// checkEvents walks the event log from the newest entry and verifies that
// it ends with this cycle's entry.
func (l *Loop) checkEvents() error {
	l.newest.Reset()
	walked := 0
	for {
		ok, err := l.newest.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := l.newest.Next(&l.scratch); err != nil {
			return err
		}
		if walked == 0 && l.scratch.cycle != l.stats.Cycles {
			return errors.AssertionFailedf(
				"newest event is from cycle %d, expected %d", l.scratch.cycle, l.stats.Cycles)
		}
		walked++
	}
	if walked != l.events.Len() {
		return errors.AssertionFailedf("walked %d events, log holds %d", walked, l.events.Len())
	}
	return nil
}

// containerSize returns the live and constructed element counts of c.
func (l *Loop) containerSize(c container) (live, constructed int) {
	switch c {
	case containerSamples:
		return l.samples.Len(), l.samples.Cap()
	case containerHistory:
		return l.history.Len(), l.history.Allocated()
	case containerOutliers:
		return l.outliers.Len(), l.outliers.Cap()
	case containerCommands:
		return l.commands.Len(), l.commands.Cap()
	case containerEvents:
		return l.events.Len(), l.events.Allocated()
	default:
		panic(errors.AssertionFailedf("unknown container %d", c))
	}
}
