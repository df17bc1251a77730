package disclosure

import "github.com/ventuslabs/siteflow/workflow"

// DefaultConfig returns the built-in gates and triggers matching the default
// step catalog. ResetConfig restores this configuration.
func DefaultConfig() Config {
	return Config{
		AdaptiveGuidance: true,
		Gates: []Gate{
			{
				Level:       workflow.LevelIntermediate,
				Description: "Unlocks wind resource assessment and layout design tools",
				UnlockedFeatures: []string{
					"wind_rose_charts",
					"layout_editor",
				},
				Criteria: UnlockCriteria{
					RequiredSteps:       []string{"site_selection", "terrain_analysis"},
					MinTimeSpentMinutes: 15,
					MinSuccessRate:      0.5,
				},
			},
			{
				Level:       workflow.LevelAdvanced,
				Description: "Unlocks wake simulation and performance tuning",
				UnlockedFeatures: []string{
					"wake_models",
					"optimization_runs",
				},
				Criteria: UnlockCriteria{
					RequiredSteps:       []string{"wind_resource", "layout_design"},
					MinTimeSpentMinutes: 45,
					MinSuccessRate:      0.5,
				},
			},
			{
				Level:       workflow.LevelExpert,
				Description: "Unlocks custom models and batch studies",
				UnlockedFeatures: []string{
					"custom_wake_models",
					"batch_studies",
				},
				Criteria: UnlockCriteria{
					RequiredSteps:           []string{"wake_simulation", "performance_analysis"},
					MinTimeSpentMinutes:     90,
					MinSuccessRate:          0.8,
					RequiresExplicitRequest: true,
				},
			},
		},
		Triggers: []Trigger{
			{
				ID:   "terrain_tools_after_site",
				Type: TriggerStepCompletion,
				Condition: Condition{
					RequiredSteps: []string{"site_selection"},
				},
				Reveals:  []string{"elevation_overlay", "slope_analysis"},
				Priority: 10,
			},
			{
				ID:   "wind_tools_after_terrain",
				Type: TriggerStepCompletion,
				Condition: Condition{
					RequiredSteps: []string{"terrain_analysis"},
				},
				Reveals:  []string{"wind_rose_charts", "measurement_import"},
				Priority: 10,
			},
			{
				ID:   "simulation_tools_after_layout",
				Type: TriggerStepCompletion,
				Condition: Condition{
					RequiredSteps: []string{"layout_design"},
					ComplexityLevel: workflow.LevelIntermediate,
				},
				Reveals:  []string{"wake_models"},
				Priority: 5,
			},
			{
				ID:   "session_depth_tools",
				Type: TriggerTimeBased,
				Condition: Condition{
					TimeThresholdMinutes: 60,
				},
				Reveals:  []string{"session_export"},
				Priority: 1,
			},
		},
	}
}
