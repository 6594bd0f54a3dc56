package seqstamps_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mediatools/seqstamps"
)

func TestNewFrameRate(t *testing.T) {
	type args struct {
		timebase int
		ntsc     bool
		expected seqstamps.FrameRate
	}

	tests := []args{
		{25, false, seqstamps.FrameRate{Num: 25, Den: 1}},
		{24, false, seqstamps.FrameRate{Num: 24, Den: 1}},
		{24, true, seqstamps.FrameRate{Num: 24000, Den: 1001}},
		{30, true, seqstamps.FrameRate{Num: 30000, Den: 1001}},
		{60, true, seqstamps.FrameRate{Num: 60000, Den: 1001}},
		{25, true, seqstamps.FrameRate{Num: 25, Den: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, seqstamps.NewFrameRate(tt.timebase, tt.ntsc))
	}
}

func TestFrameRate_Valid(t *testing.T) {
	assert.True(t, seqstamps.FrameRate{Num: 25, Den: 1}.Valid())
	assert.False(t, seqstamps.FrameRate{}.Valid())
	assert.False(t, seqstamps.FrameRate{Num: -25, Den: 1}.Valid())
}

func TestFrameRate_String(t *testing.T) {
	assert.Equal(t, "25", seqstamps.FrameRate{Num: 25, Den: 1}.String())
	assert.Equal(t, "29.97", seqstamps.FrameRate{Num: 30000, Den: 1001}.String())
}

func TestResolvedTimestamp_Label(t *testing.T) {
	known := seqstamps.ResolvedTimestamp{
		Time:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Source: seqstamps.DateSourceEmbedded,
		Known:  true,
	}
	assert.Equal(t, "2024-01-01 10:00:00", known.Label("a.mov"))

	unknown := seqstamps.Unknown()
	assert.Equal(t, "[NO-DATE] a.mov", unknown.Label("a.mov"))
	assert.Equal(t, "[NO-DATE]", unknown.Label(""))
}

func TestDateSources_Parse(t *testing.T) {
	assert.Equal(t, &seqstamps.DateSourceFilename, seqstamps.DateSources.Parse("filename"))
	assert.Nil(t, seqstamps.DateSources.Parse("carrier pigeon"))
}
