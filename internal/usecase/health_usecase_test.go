package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{
			name:     "explicit range",
			from:     "2026-01-01",
			to:       "2026-01-31",
			wantFrom: "2026-01-01",
			wantTo:   "2026-01-31",
		},
		{
			name:     "from only",
			from:     "2026-02-10",
			to:       "2026-02-10",
			wantFrom: "2026-02-10",
			wantTo:   "2026-02-10",
		},
		{
			name:    "from after to",
			from:    "2026-03-02",
			to:      "2026-03-01",
			wantErr: ErrInvalidRange,
		},
		{
			name:    "bad from format",
			from:    "02-03-2026",
			to:      "2026-03-10",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "bad to format",
			to:      "yesterday",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := parseRange(tt.from, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := from.Format("2006-01-02"); got != tt.wantFrom {
				t.Errorf("from = %s, want %s", got, tt.wantFrom)
			}
			if got := to.Format("2006-01-02"); got != tt.wantTo {
				t.Errorf("to = %s, want %s", got, tt.wantTo)
			}
		})
	}
}

func TestParseRangeDefaults(t *testing.T) {
	from, to, err := parseRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !to.Equal(today) {
		t.Errorf("to = %s, want %s", to, today)
	}
	if !from.Equal(today.AddDate(0, 0, -defaultMetricsDays)) {
		t.Errorf("from = %s, want %d days before today", from, defaultMetricsDays)
	}
}
