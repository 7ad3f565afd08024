package scheduler

import (
	"testing"
	"time"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{
			name:  "valid morning time",
			input: "06:00",
			want:  ScheduleTime{Hour: 6, Minute: 0},
		},
		{
			name:  "valid evening time",
			input: "21:30",
			want:  ScheduleTime{Hour: 21, Minute: 30},
		},
		{
			name:    "hour out of range",
			input:   "24:00",
			wantErr: true,
		},
		{
			name:    "minute out of range",
			input:   "12:60",
			wantErr: true,
		},
		{
			name:    "not a time",
			input:   "morning",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScheduleTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestShouldRunDeduplicatesMinute(t *testing.T) {
	s := &Scheduler{
		scheduleTimes: []ScheduleTime{{Hour: 6, Minute: 0}},
	}

	at := time.Date(2026, 3, 1, 6, 0, 30, 0, time.UTC)
	if !s.shouldRun(at) {
		t.Fatal("expected first check in scheduled minute to run")
	}
	if s.shouldRun(at.Add(10 * time.Second)) {
		t.Error("expected second check in same minute to be deduplicated")
	}
	if s.shouldRun(at.Add(5 * time.Minute)) {
		t.Error("expected non-scheduled minute not to run")
	}
	if !s.shouldRun(at.AddDate(0, 0, 1)) {
		t.Error("expected next day's scheduled minute to run")
	}
}
