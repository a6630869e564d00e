package rank

import "testing"

func TestDetectIntentBudget(t *testing.T) {
	tests := []struct {
		query string
		want  float64
	}{
		{"laptop under 50k", 50000},
		{"laptop under 50000", 50000},
		{"gaming pc 2m", 2000000},
		{"phone under 1,20,000", 120000},
		{"best wireless headphones", 0},
		{"latest mobiles", 0},
	}
	for _, tt := range tests {
		got := DetectIntent(tt.query)
		if got.Budget != tt.want {
			t.Errorf("DetectIntent(%q).Budget = %v, want %v", tt.query, got.Budget, tt.want)
		}
	}
}

func TestDetectIntentSignals(t *testing.T) {
	if in := DetectIntent("cheap phone"); !in.PriceIntent {
		t.Fatalf("expected priceIntent for 'cheap phone'")
	}
	if in := DetectIntent("sasta laptop"); !in.PriceIntent {
		t.Fatalf("expected priceIntent for 'sasta laptop'")
	}
	if in := DetectIntent("latest iphone"); !in.Latest {
		t.Fatalf("expected latest for 'latest iphone'")
	}
	if in := DetectIntent("newest tablets"); !in.Latest {
		t.Fatalf("expected latest for 'newest tablets'")
	}
	in := DetectIntent("wireless mouse")
	if in.PriceIntent || in.Latest || in.Budget != 0 {
		t.Fatalf("expected empty intent, got %+v", in)
	}
}

func TestDetectIntentCaseInsensitive(t *testing.T) {
	in := DetectIntent("CHEAP laptop UNDER 30K")
	if !in.PriceIntent {
		t.Fatalf("expected priceIntent")
	}
	if in.Budget != 30000 {
		t.Fatalf("Budget = %v, want 30000", in.Budget)
	}
}
