package service

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"universo/internal/config"
	"universo/internal/logging"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:30", want: "0 30 9 * * *"},
		{in: " 00:00 ", want: "0 0 0 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "1:2:3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				c.Assert(err, qt.IsNotNil)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestScheduleReport(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Report
		want    bool
		wantErr bool
	}{
		{name: "disabled", cfg: config.Report{}},
		{name: "interval", cfg: config.Report{Interval: 6 * time.Hour}, want: true},
		{name: "daily", cfg: config.Report{DailyAt: "08:00"}, want: true},
		{name: "daily wins", cfg: config.Report{DailyAt: "08:00", Interval: time.Hour}, want: true},
		{name: "bad daily", cfg: config.Report{DailyAt: "8am"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			s := NewSchedulerService(time.UTC, logging.Discard())
			ok, err := s.ScheduleReport(tt.cfg, func() {})
			if tt.wantErr {
				c.Assert(err, qt.IsNotNil)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Assert(ok, qt.Equals, tt.want)
			if tt.want {
				c.Assert(s.Entries(), qt.Equals, 1)
			} else {
				c.Assert(s.Entries(), qt.Equals, 0)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	c := qt.New(t)
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-01-01", "2025/01/01", "2025-01-01T22:00:00Z"} {
		got, ok := ParseDate(raw)
		c.Assert(ok, qt.IsTrue, qt.Commentf(raw))
		c.Assert(got.Equal(want), qt.IsTrue, qt.Commentf(raw))
	}
	_, ok := ParseDate("01/01/2025")
	c.Assert(ok, qt.IsFalse)
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{raw: `7`, want: 7, wantOK: true},
		{raw: `"12"`, want: 12, wantOK: true},
		{raw: `" 3 "`, want: 3, wantOK: true},
		{raw: `null`},
		{raw: `"abc"`},
		{raw: `1.5`},
		{raw: `0`},
		{raw: `-4`},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := qt.New(t)
			var id ID
			c.Assert(id.UnmarshalJSON([]byte(tt.raw)), qt.IsNil)
			got, ok := id.Uint()
			c.Assert(ok, qt.Equals, tt.wantOK)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}
