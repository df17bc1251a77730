package workflow

import "testing"

func TestComplexityOrdering(t *testing.T) {
	levels := []ComplexityLevel{LevelBasic, LevelIntermediate, LevelAdvanced, LevelExpert}
	for i := 1; i < len(levels); i++ {
		if levels[i-1].Ordinal() >= levels[i].Ordinal() {
			t.Errorf("%s.Ordinal() = %d, should be below %s.Ordinal() = %d",
				levels[i-1], levels[i-1].Ordinal(), levels[i], levels[i].Ordinal())
		}
	}
}

func TestComplexityNext(t *testing.T) {
	tests := []struct {
		level ComplexityLevel
		want  ComplexityLevel
		ok    bool
	}{
		{LevelBasic, LevelIntermediate, true},
		{LevelIntermediate, LevelAdvanced, true},
		{LevelAdvanced, LevelExpert, true},
		{LevelExpert, "", false},
	}
	for _, tt := range tests {
		next, ok := tt.level.Next()
		if ok != tt.ok || next != tt.want {
			t.Errorf("%s.Next() = (%q, %v), want (%q, %v)", tt.level, next, ok, tt.want, tt.ok)
		}
	}
}

func TestUnknownLevelDegrades(t *testing.T) {
	var l ComplexityLevel = "galactic"
	if l.Valid() {
		t.Error("unknown level should not be valid")
	}
	if l.Ordinal() != 0 {
		t.Errorf("unknown level Ordinal = %d, want 0", l.Ordinal())
	}
}

func TestCategoryRankPipelineOrder(t *testing.T) {
	pipeline := []Category{
		CategorySiteSelection, CategoryTerrain, CategoryWind,
		CategoryLayout, CategoryPerformance, CategoryReporting,
	}
	for i := 1; i < len(pipeline); i++ {
		if pipeline[i-1].Rank() >= pipeline[i].Rank() {
			t.Errorf("%s should rank before %s", pipeline[i-1], pipeline[i])
		}
	}
	if unknown := Category("astrology"); unknown.Rank() <= CategoryReporting.Rank() {
		t.Error("unknown categories should sort after reporting")
	}
}
