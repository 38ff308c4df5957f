package quiz_test

import (
	"testing"

	"github.com/mindcare/wellness-api/internal/quiz"
)

func TestSameLabels(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"Equal", []string{"A"}, []string{"A"}, true},
		{"OrderIgnored", []string{"C", "A"}, []string{"A", "C"}, true},
		{"DuplicatesIgnored", []string{"A", "A", "C"}, []string{"C", "A"}, true},
		{"Subset", []string{"A"}, []string{"A", "C"}, false},
		{"Superset", []string{"A", "B", "C"}, []string{"A", "C"}, false},
		{"Disjoint", []string{"B"}, []string{"A"}, false},
		{"Empty", nil, []string{"A"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quiz.SameLabels(tt.a, tt.b); got != tt.want {
				t.Errorf("SameLabels(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
