package disclosure

import (
	"time"

	"github.com/ventuslabs/siteflow/workflow"
)

// achievementRule is one fixed achievement over the progress snapshot.
type achievementRule struct {
	id          string
	title       string
	description string
	category    string
	earned      func(state *workflow.State) bool
}

// speedDemonWindowMinutes is the time budget for the speed_demon achievement.
const speedDemonWindowMinutes = 20

// achievementRules is the fixed rule set, in unlock-check order.
var achievementRules = []achievementRule{
	{
		id:          "first_step",
		title:       "First Step",
		description: "Completed your first analysis step",
		category:    "progress",
		earned: func(state *workflow.State) bool {
			return len(state.CompletedSteps) == 1
		},
	},
	{
		id:          "speed_demon",
		title:       "Speed Demon",
		description: "Completed three steps in under twenty minutes",
		category:    "pace",
		earned: func(state *workflow.State) bool {
			return len(state.CompletedSteps) >= 3 &&
				state.Progress.TimeSpentMinutes <= speedDemonWindowMinutes
		},
	},
	{
		id:          "thorough_analyst",
		title:       "Thorough Analyst",
		description: "Completed five analysis steps",
		category:    "progress",
		earned: func(state *workflow.State) bool {
			return len(state.CompletedSteps) >= 5
		},
	},
}

// evaluateAchievements returns newly earned achievements only. Ids in
// existing are never re-emitted, which gives at-most-once semantics as long
// as the caller threads the committed set back in.
func evaluateAchievements(state *workflow.State, existing []string, now time.Time) []workflow.Achievement {
	have := make(map[string]bool, len(existing))
	for _, id := range existing {
		have[id] = true
	}

	var unlocked []workflow.Achievement
	for _, rule := range achievementRules {
		if have[rule.id] || !rule.earned(state) {
			continue
		}
		unlocked = append(unlocked, workflow.Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Category:    rule.category,
			UnlockedAt:  now,
		})
	}
	return unlocked
}
