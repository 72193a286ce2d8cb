package progression

import "testing"

func TestTierForBoundaries(t *testing.T) {
	tests := []struct {
		level int
		want  Tier
	}{
		{-3, TierDescriptive},
		{0, TierDescriptive},
		{1, TierDescriptive},
		{7, TierDescriptive},
		{8, TierOpinion},
		{14, TierOpinion},
		{15, TierNarrative},
		{21, TierNarrative},
		{22, TierPersuasion},
		{100, TierPersuasion},
	}

	for _, tt := range tests {
		got := TierFor(tt.level)
		if got.Tier != tt.want {
			t.Errorf("TierFor(%d).Tier = %d, want %d", tt.level, got.Tier, tt.want)
		}
		if got.Descriptor == "" || got.Constraint == "" {
			t.Errorf("TierFor(%d) returned empty band text", tt.level)
		}
	}
}

func TestTierNonDecreasing(t *testing.T) {
	prev := TierFor(1).Tier
	for level := 2; level <= 50; level++ {
		cur := TierFor(level).Tier
		if cur < prev {
			t.Fatalf("tier decreased at level %d: %d -> %d", level, prev, cur)
		}
		prev = cur
	}
}
