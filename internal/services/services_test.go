package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/slapelachie/topsongs/internal/shared"
)

func TestTimeRange(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		t.Run("Accepts Valid Values", func(t *testing.T) {
			for _, tr := range ValidTimeRanges() {
				if err := tr.Validate(); err != nil {
					t.Errorf("expected %q to be valid, got %v", tr, err)
				}
			}
		})

		t.Run("Rejects Invalid Values", func(t *testing.T) {
			for _, value := range []string{"", "yearly", "Short_Term", "short_term ", "longterm"} {
				err := TimeRange(value).Validate()
				if err == nil {
					t.Errorf("expected %q to be invalid", value)
					continue
				}
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected invalid argument error, got %v", err)
				}
				for _, valid := range ValidTimeRanges() {
					if !strings.Contains(err.Error(), string(valid)) {
						t.Errorf("error should enumerate %q, got %v", valid, err)
					}
				}
			}
		})
	})

	t.Run("PlaylistName", func(t *testing.T) {
		cases := map[TimeRange]string{
			ShortTerm:  "Top Songs - Last Month",
			MediumTerm: "Top Songs - Last 6 Months",
			LongTerm:   "Top Songs - All Time",
		}

		for tr, want := range cases {
			name, err := tr.PlaylistName()
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", tr, err)
			}
			if name != want {
				t.Errorf("expected %q for %q, got %q", want, tr, name)
			}
		}

		t.Run("Invalid Value", func(t *testing.T) {
			_, err := TimeRange("weekly").PlaylistName()
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected invalid argument error, got %v", err)
			}
			if !strings.Contains(err.Error(), "weekly") {
				t.Errorf("error should name the offending value, got %v", err)
			}
		})
	})

	t.Run("ParseTimeRanges", func(t *testing.T) {
		t.Run("Empty Input Uses Defaults", func(t *testing.T) {
			ranges, err := ParseTimeRanges("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []TimeRange{MediumTerm, ShortTerm}
			if len(ranges) != len(want) {
				t.Fatalf("expected %d ranges, got %d", len(want), len(ranges))
			}
			for i := range want {
				if ranges[i] != want[i] {
					t.Errorf("expected %q at %d, got %q", want[i], i, ranges[i])
				}
			}
		})

		t.Run("Parses CSV With Spaces", func(t *testing.T) {
			ranges, err := ParseTimeRanges("short_term, long_term")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(ranges) != 2 || ranges[0] != ShortTerm || ranges[1] != LongTerm {
				t.Errorf("unexpected ranges %v", ranges)
			}
		})

		t.Run("Rejects Invalid Entry", func(t *testing.T) {
			_, err := ParseTimeRanges("short_term,forever")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected invalid argument error, got %v", err)
			}
		})
	})
}
