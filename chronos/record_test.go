package chronos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAddTime(t *testing.T) {
	samples := []float64{0.5, 0.25, 2, 0.25, 1}
	r := NewRecord("f", "1")
	for _, s := range samples {
		r.AddTime(s)
	}

	assert.Equal(t, int64(5), r.Calls())
	assert.InDelta(t, 4.0, r.Total(), 1e-12)
	assert.Equal(t, 2.0, r.Max())
	assert.Equal(t, 0.25, r.Min())
	assert.InDelta(t, 0.8, r.Mean(), 1e-12)
}

func TestRecordFirstSampleIsMaxAndMin(t *testing.T) {
	r := NewRecord("f", "1")
	r.AddTime(0)
	assert.Equal(t, 0.0, r.Max())
	assert.Equal(t, 0.0, r.Min())

	r = NewRecord("f", "1")
	r.AddTime(3)
	assert.Equal(t, 3.0, r.Max())
	assert.Equal(t, 3.0, r.Min())
	assert.Equal(t, 3.0, r.Mean())
}

func TestRecordEmpty(t *testing.T) {
	r := NewRecord("f", "1")
	assert.Zero(t, r.Max())
	assert.Zero(t, r.Min())
	assert.Zero(t, r.Mean())
	assert.Zero(t, r.Total())
	assert.Zero(t, r.Calls())
	assert.Equal(t, "0.000000,0.000000,0.000000,0,0.000000,1,f", r.CSV())
}

func TestRecordRows(t *testing.T) {
	r := NewRecord("main.fibb", "42")
	r.AddTime(0.5)
	r.AddTime(1.5)

	assert.Equal(t, "1.500000,0.500000,1.000000,2,2.000000,42,main.fibb", r.CSV())
	assert.Equal(t, "1.500000\t\t0.500000\t\t1.000000\t\t2.000000\t\t2.000000\t\t42\t\tmain.fibb", r.String())
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, "Max Time,Min Time,Mean Time,Total Calls,Total Time,Hash ID,Calling Function", CSVHeader)
	assert.Equal(t, "Max Time\t\tMin Time\t\tMean Time\t\tTotal Calls\t\tTotal Time\t\tHash ID\t\t\tCalling Function", TextHeader)
}

func TestRecordValueAccessors(t *testing.T) {
	snapshot := func() Record {
		r := NewRecord("f", "1")
		r.AddTime(2)
		return *r
	}
	assert.Equal(t, int64(1), snapshot().Calls())
	assert.Equal(t, 2.0, snapshot().Max())
	assert.Equal(t, "2.000000,2.000000,2.000000,1,2.000000,1,f", snapshot().CSV())
}
