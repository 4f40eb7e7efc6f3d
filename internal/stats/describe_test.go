package stats

import "testing"

func TestDescribe(t *testing.T) {
	d := Describe([]float64{4, 1, 3, 2})
	if d.Count != 4 || d.Sum != 10 || d.Mean != 2.5 || d.Median != 2.5 || d.Max != 4 {
		t.Fatalf("unexpected description: %+v", d)
	}
	if d.P90 < 3.6 || d.P90 > 3.8 {
		t.Fatalf("p90 %v", d.P90)
	}
	if got := Describe(nil); got != (Description{}) {
		t.Fatalf("empty input: %+v", got)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 0, 5}
	cases := []struct {
		p, want float64
	}{
		{0, 0}, {50, 5}, {100, 10}, {-5, 0}, {150, 10}, {25, 2.5},
	}
	for _, tc := range cases {
		if got := Percentile(values, tc.p); got != tc.want {
			t.Errorf("Percentile(%v) = %v want %v", tc.p, got, tc.want)
		}
	}
	if values[0] != 10 {
		t.Fatalf("input was modified")
	}
}
