package workflow

// DefaultSteps returns the built-in wind-farm analysis step catalog. It is
// used when no analysis pack overrides the graph.
func DefaultSteps() []*StepDefinition {
	return []*StepDefinition{
		{
			ID:                "site_selection",
			Title:             "Site Selection",
			Category:          CategorySiteSelection,
			Complexity:        LevelBasic,
			NextSteps:         []string{"terrain_analysis"},
			EstimatedDuration: 10,
			Requirements:      []string{"coordinates"},
			SuccessCriteria:   []string{"visualization", "data"},
		},
		{
			ID:                "terrain_analysis",
			Title:             "Terrain Analysis",
			Category:          CategoryTerrain,
			Complexity:        LevelBasic,
			Prerequisites:     []string{"site_selection"},
			NextSteps:         []string{"wind_resource"},
			EstimatedDuration: 15,
			Requirements:      []string{"coordinates", "terrain"},
			SuccessCriteria:   []string{"visualization", "data"},
		},
		{
			ID:                "wind_resource",
			Title:             "Wind Resource Assessment",
			Category:          CategoryWind,
			Complexity:        LevelIntermediate,
			Prerequisites:     []string{"terrain_analysis"},
			NextSteps:         []string{"layout_design"},
			EstimatedDuration: 20,
			Requirements:      []string{"coordinates", "wind"},
			SuccessCriteria:   []string{"visualization", "data"},
		},
		{
			ID:                "layout_design",
			Title:             "Turbine Layout Design",
			Category:          CategoryLayout,
			Complexity:        LevelIntermediate,
			Prerequisites:     []string{"wind_resource"},
			NextSteps:         []string{"wake_simulation"},
			EstimatedDuration: 25,
			Requirements:      []string{"terrain", "wind"},
			SuccessCriteria:   []string{"visualization", "data"},
		},
		{
			ID:                "wake_simulation",
			Title:             "Wake Simulation",
			Category:          CategoryPerformance,
			Complexity:        LevelAdvanced,
			Prerequisites:     []string{"layout_design"},
			NextSteps:         []string{"performance_analysis"},
			EstimatedDuration: 30,
			Requirements:      []string{"layout"},
			SuccessCriteria:   []string{"visualization", "data", "analysis"},
		},
		{
			ID:                "performance_analysis",
			Title:             "Performance Analysis",
			Category:          CategoryPerformance,
			Complexity:        LevelAdvanced,
			Prerequisites:     []string{"wake_simulation"},
			NextSteps:         []string{"report_generation"},
			EstimatedDuration: 20,
			Requirements:      []string{"layout", "wind"},
			SuccessCriteria:   []string{"data", "analysis"},
		},
		{
			ID:                "report_generation",
			Title:             "Report Generation",
			Category:          CategoryReporting,
			Complexity:        LevelIntermediate,
			Prerequisites:     []string{"performance_analysis"},
			EstimatedDuration: 15,
			Requirements:      []string{"performance"},
			SuccessCriteria:   []string{"data"},
		},
	}
}
