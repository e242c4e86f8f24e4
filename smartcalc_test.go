package smartcalc

import (
	"testing"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/value"
)

// These mirror the end-to-end scenarios in spec.md §8: each is one full
// Execute call, asserted against the last line's typed value.
func TestExecuteScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		kind  value.Kind
	}{
		{"percent chain", "120 + 30% + 10%", "171.6", value.KindNumber},
		{"implicit plus", "100 200", "300", value.KindNumber},
		{"parenthesized percent", "8 / (45 - 20%)", "0.2222222222222222", value.KindNumber},
		{"rate times duration", "$25/hour * 14 hours of work", "$350.00", value.KindMoney},
		{"duration to seconds", "5 weeks as seconds", "3024000", value.KindNumber},
		{"time minus duration", "11:40 - 10 minute", "11:30:00", value.KindTime},
	}

	cfg := config.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Execute("en", tt.input, cfg)
			if len(results) == 0 {
				t.Fatalf("Execute returned no results")
			}
			last := results[len(results)-1]
			if last.Err != nil {
				t.Fatalf("unexpected error: %v", last.Err)
			}
			if last.Value == nil {
				t.Fatalf("expected a value, got nil")
			}
			if last.Value.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", last.Value.Kind(), tt.kind)
			}
			if got := last.Value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteTimezoneShiftsTime(t *testing.T) {
	// End-to-end guard for the Timezone supplement (SPEC_FULL.md §7):
	// tokenizer category order, parser primary set, and interpreter
	// dispatch all have to cooperate for a line like this to evaluate.
	cfg := config.Default()
	results := Execute("en", "11:00 + GMT+5", cfg)
	last := results[len(results)-1]
	if last.Err != nil {
		t.Fatalf("unexpected error: %v", last.Err)
	}
	got, ok := last.Value.(*value.Time)
	if !ok {
		t.Fatalf("want *value.Time, got %T", last.Value)
	}
	if want := "16:00:00"; got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}
}

func TestExecuteVariableAcrossLines(t *testing.T) {
	cfg := config.Default()
	results := Execute("en", "erhan = 120\nerhan + 120", cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 line results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("line 1: unexpected error: %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("line 2: unexpected error: %v", results[1].Err)
	}
	got, ok := results[1].Value.(*value.Number)
	if !ok {
		t.Fatalf("line 2: want *value.Number, got %T", results[1].Value)
	}
	if want := "240"; got.String() != want {
		t.Errorf("line 2 value = %q, want %q", got.String(), want)
	}
}

func TestExecuteVariableAcrossLinesTime(t *testing.T) {
	cfg := config.Default()
	results := Execute("en", "t = 11:30\nt add 1 hour 1 minute 30 second", cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 line results, got %d", len(results))
	}
	if results[1].Err != nil {
		t.Fatalf("line 2: unexpected error: %v", results[1].Err)
	}
	got, ok := results[1].Value.(*value.Time)
	if !ok {
		t.Fatalf("line 2: want *value.Time, got %T", results[1].Value)
	}
	if want := "12:31:30"; got.String() != want {
		t.Errorf("line 2 value = %q, want %q", got.String(), want)
	}
}

func TestExecuteMultiplierSuffixes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2k", "2000"},
		{"3M", "3000000"},
	}
	cfg := config.Default()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			results := Execute("en", tt.input, cfg)
			last := results[len(results)-1]
			if last.Err != nil {
				t.Fatalf("unexpected error: %v", last.Err)
			}
			if got := last.Value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteEmptyLineIsNilValue(t *testing.T) {
	cfg := config.Default()
	results := Execute("en", "", cfg)
	if len(results) != 1 {
		t.Fatalf("expected 1 line result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("empty line should not error, got %v", results[0].Err)
	}
	if results[0].Value != nil {
		t.Errorf("empty line should produce a nil value, got %v", results[0].Value)
	}
}

func TestExecuteFailureDoesNotAbortSession(t *testing.T) {
	cfg := config.Default()
	results := Execute("en", "(1 + 2\n5 + 5", cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 line results, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatalf("line 1 should fail to parse an unbalanced expression")
	}
	if results[1].Err != nil {
		t.Fatalf("line 2 should still evaluate after line 1 fails: %v", results[1].Err)
	}
	got, ok := results[1].Value.(*value.Number)
	if !ok {
		t.Fatalf("line 2: want *value.Number, got %T", results[1].Value)
	}
	if want := "10"; got.String() != want {
		t.Errorf("line 2 value = %q, want %q", got.String(), want)
	}
}

func TestExecuteNilConfigUsesDefault(t *testing.T) {
	results := Execute("en", "1 + 1", nil)
	last := results[len(results)-1]
	if last.Err != nil {
		t.Fatalf("unexpected error: %v", last.Err)
	}
	if got, want := last.Value.String(), "2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
