package report

import "testing"

func TestComputeMarks(t *testing.T) {
	tests := []struct {
		name             string
		score            float64
		totalQuestions   int
		marksPerQuestion float64
		wantTotal        float64
		wantPct          int
		wantNoPct        bool
	}{
		{"full marks", 10, 10, 1, 10, 100, false},
		{"half marks", 5, 10, 1, 10, 50, false},
		{"rounds up", 2, 3, 1, 3, 67, false},
		{"rounds down", 1, 3, 1, 3, 33, false},
		{"two marks per question", 15, 10, 2, 20, 75, false},
		{"fractional marks per question", 3, 12, 0.5, 6, 50, false},
		{"zero questions", 5, 0, 1, 0, 0, true},
		{"zero marks per question", 5, 10, 0, 0, 0, true},
		{"negative score still computes", -2, 10, 1, 10, -20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, pct := ComputeMarks(tt.score, tt.totalQuestions, tt.marksPerQuestion)
			if total != tt.wantTotal {
				t.Errorf("total marks = %v, want %v", total, tt.wantTotal)
			}
			if tt.wantNoPct {
				if pct != nil {
					t.Errorf("percentage = %d, want nil", *pct)
				}
				return
			}
			if pct == nil {
				t.Fatalf("percentage = nil, want %d", tt.wantPct)
			}
			if *pct != tt.wantPct {
				t.Errorf("percentage = %d, want %d", *pct, tt.wantPct)
			}
		})
	}
}
