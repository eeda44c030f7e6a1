package utils

import "testing"

func TestEvalNumber(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2", 2},
		{"0.5", 0.5},
		{"1/4", 0.25},
		{"3/2", 1.5},
		{" (1 + 1) * 2 ", 4},
	}
	for _, tt := range tests {
		got, err := EvalNumber(tt.expr)
		if err != nil {
			t.Errorf("EvalNumber(%q): %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EvalNumber(%q) = %g, want %g", tt.expr, got, tt.want)
		}
	}
}

func TestEvalNumber_Errors(t *testing.T) {
	for _, expr := range []string{"", "abc", "x*2", "1/0", "2 >", "1 > 0"} {
		if v, err := EvalNumber(expr); err == nil {
			t.Errorf("EvalNumber(%q) = %g, want error", expr, v)
		}
	}
}

func TestColoredBlock(t *testing.T) {
	got := ColoredBlock("  ", 1, 2, 3)
	want := "\033[48;2;1;2;3m  \033[0m"
	if got != want {
		t.Errorf("ColoredBlock = %q, want %q", got, want)
	}
}
