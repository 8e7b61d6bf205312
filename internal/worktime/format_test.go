package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToTimeStr(t *testing.T) {
	ts := time.Date(2025, 11, 3, 8, 5, 0, 0, berlin)
	assert.Equal(t, "08:05", ToTimeStr(&ts))
	assert.Equal(t, NoTimeStr, ToTimeStr(nil))
}

func TestToLocalTimeStr(t *testing.T) {
	// 07:05 UTC is 08:05 Berlin in winter.
	ts := time.Date(2025, 11, 3, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, "08:05", ToLocalTimeStr(&ts, berlin))
	assert.Equal(t, NoTimeStr, ToLocalTimeStr(nil, berlin))
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{510, "8:30"},
		{615, "10:15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
	}
}
