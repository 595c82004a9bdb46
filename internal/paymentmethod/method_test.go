package paymentmethod

import "testing"

func TestMethodAppliesTo(t *testing.T) {
	method := &Method{
		Ranges: []Range{
			{Min: 0, Max: 100},
			{Min: 1000, Max: 5000},
		},
	}

	tests := []struct {
		name   string
		amount int64
		want   bool
	}{
		{"lowerBoundInclusive", 0, true},
		{"upperBoundInclusive", 100, true},
		{"betweenRanges", 500, false},
		{"secondRange", 2500, true},
		{"aboveAllRanges", 9999, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := method.AppliesTo(test.amount); got != test.want {
				t.Errorf("AppliesTo(%d) = %v, want %v", test.amount, got, test.want)
			}
		})
	}

	t.Run("noRanges", func(t *testing.T) {
		if (&Method{}).AppliesTo(50) {
			t.Error("a method without ranges applied to an amount")
		}
	})
}
