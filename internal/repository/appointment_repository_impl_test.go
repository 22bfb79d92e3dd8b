package repository

import (
	"testing"
	"time"
)

func TestSplitReminderWindow(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want []reminderWindow
	}{
		{
			name: "same day",
			from: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 9, 14, 11, 7, 0, 0, time.UTC),
			want: []reminderWindow{
				{date: "2026-09-14", startFrom: "08:00:00", startTo: "11:07:00"},
			},
		},
		{
			name: "crosses midnight",
			from: time.Date(2026, 9, 14, 21, 30, 0, 0, time.UTC),
			to:   time.Date(2026, 9, 15, 0, 37, 0, 0, time.UTC),
			want: []reminderWindow{
				{date: "2026-09-14", startFrom: "21:30:00", startTo: "23:59:59"},
				{date: "2026-09-15", startFrom: "00:00:00", startTo: "00:37:00"},
			},
		},
		{
			name: "ends exactly at midnight",
			from: time.Date(2026, 9, 14, 20, 53, 0, 0, time.UTC),
			to:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			want: []reminderWindow{
				{date: "2026-09-14", startFrom: "20:53:00", startTo: "23:59:59"},
				{date: "2026-09-15", startFrom: "00:00:00", startTo: "00:00:00"},
			},
		},
		{
			name: "starts exactly at midnight",
			from: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 9, 15, 3, 0, 0, 0, time.UTC),
			want: []reminderWindow{
				{date: "2026-09-15", startFrom: "00:00:00", startTo: "03:00:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitReminderWindow(tt.from, tt.to)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d windows, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("window %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
