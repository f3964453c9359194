package queue

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestParsePlayerList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A, B ,C", []string{"A", "B", "C"}},
		{" , ,", []string{}},
		{"Ann,Bo,Ann, Cy", []string{"Ann", "Bo", "Cy"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := ParsePlayerList(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Fatalf("ParsePlayerList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRegistryValidate(t *testing.T) {
	for _, courts := range []int{0, -1} {
		err := NewRegistry([]string{"A"}, courts).Validate()
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("courts=%d: err = %v, want ErrInvalidConfiguration", courts, err)
		}
	}
	if err := NewRegistry(nil, 1).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCourt(t *testing.T) {
	tests := []struct {
		number, courts, want int
	}{
		{1, 1, 1},
		{5, 1, 1},
		{1, 2, 1},
		{2, 2, 2},
		{3, 2, 1},
		{7, 3, 1},
		{9, 4, 1},
		{12, 4, 4},
	}
	for _, tt := range tests {
		got, err := Court(tt.number, tt.courts)
		if err != nil {
			t.Fatalf("Court(%d, %d): %v", tt.number, tt.courts, err)
		}
		if got != tt.want {
			t.Fatalf("Court(%d, %d) = %d, want %d", tt.number, tt.courts, got, tt.want)
		}
	}

	if _, err := Court(1, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Court(1, 0) err = %v", err)
	}
	if _, err := Court(0, 2); !errors.Is(err, ErrUnknownMatch) {
		t.Fatalf("Court(0, 2) err = %v", err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("boom"), ""},
		{fmt.Errorf("generate: %w", ErrInsufficientPlayers), "insufficient_players"},
		{ErrInvalidConfiguration, "invalid_configuration"},
		{fmt.Errorf("edit: %w", ErrInvalidRosterSize), "invalid_roster_size"},
		{ErrUnknownMatch, "unknown_match"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
