package chronos

import (
	"strconv"
	"strings"
	"time"
)

const (
	// CSVHeader is the first line of the comma-separated report.
	CSVHeader = "Max Time,Min Time,Mean Time,Total Calls,Total Time,Hash ID,Calling Function"
	// TextHeader is the first line of the human-readable report.
	TextHeader = "Max Time\t\tMin Time\t\tMean Time\t\tTotal Calls\t\tTotal Time\t\tHash ID\t\t\tCalling Function"

	textSep = "\t\t"
)

// Record holds the accumulated timing statistics for one (function, call id) pair.
// All durations are in seconds.
type Record struct {
	Name string
	ID   string

	max   float64
	min   float64
	mean  float64
	total float64
	calls int64

	start time.Time
	stop  time.Time
}

// NewRecord returns a record with no samples.
func NewRecord(name, id string) *Record {
	return &Record{Name: name, ID: id}
}

// AddTime folds one elapsed-time sample into the record. The first sample
// becomes both max and min; ties replace the stored extreme.
func (r *Record) AddTime(sample float64) {
	if r.calls == 0 || sample >= r.max {
		r.max = sample
	}
	if r.calls == 0 || sample <= r.min {
		r.min = sample
	}
	r.total += sample
	r.calls++
	r.mean = r.total / float64(r.calls)
}

// Max is 0 until the first sample.
func (r Record) Max() float64 { return r.max }

// Min is 0 until the first sample.
func (r Record) Min() float64 { return r.min }

func (r Record) Mean() float64 { return r.mean }

func (r Record) Total() float64 { return r.total }

func (r Record) Calls() int64 { return r.calls }

func (r Record) Start() time.Time { return r.start }

func (r Record) Stop() time.Time { return r.stop }

func (r *Record) SetStart(t time.Time) { r.start = t }

func (r *Record) SetStop(t time.Time) { r.stop = t }

func (r *Record) SetID(id string) { r.ID = id }

// CSV renders the record as a comma-separated report row.
func (r Record) CSV() string {
	return strings.Join([]string{
		formatSeconds(r.max),
		formatSeconds(r.min),
		formatSeconds(r.mean),
		strconv.FormatInt(r.calls, 10),
		formatSeconds(r.total),
		r.ID,
		r.Name,
	}, ",")
}

// String renders the record as a tab-separated report row.
func (r Record) String() string {
	return strings.Join([]string{
		formatSeconds(r.max),
		formatSeconds(r.min),
		formatSeconds(r.mean),
		formatSeconds(float64(r.calls)),
		formatSeconds(r.total),
		r.ID,
		r.Name,
	}, textSep)
}

// formatSeconds uses six fixed decimals, matching printf's %f.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
