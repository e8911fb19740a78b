package insights

import "fmt"

type SuggestionAction string

const (
	SuggestRest           SuggestionAction = "rest"
	SuggestRecoveryFlow   SuggestionAction = "recovery_flow"
	SuggestTechniqueLight SuggestionAction = "technique_light"
	SuggestNormal         SuggestionAction = "normal"
	SuggestPushHard       SuggestionAction = "push_hard"
)

const (
	lowWhoopRecovery  = 33
	goodWhoopRecovery = 66
	lowReadiness      = 40
	goodReadiness     = 70
	shortSleepHours   = 6
)

type SuggestionInput struct {
	Load    LoadSummary
	Streaks StreakSummary

	// nil when there is no check-in / whoop data for today
	ReadinessScore *float64
	WhoopRecovery  *float64
	SleepHours     *float64
}

type Suggestion struct {
	Action  SuggestionAction `json:"action"`
	Reasons []string         `json:"reasons"`
}

// Suggest runs the ordered rule list over whatever signals are available and
// returns what today's training should look like. Rules whose inputs are
// missing are skipped, so a bare session log still produces an answer.
func Suggest(in SuggestionInput) Suggestion {
	if in.Load.Risk == RiskHighRisk {
		return Suggestion{
			Action: SuggestRest,
			Reasons: []string{
				fmt.Sprintf("acute:chronic workload ratio at %.2f, well above the safe zone", in.Load.ACWR),
			},
		}
	}

	var recoveryReasons []string
	if in.WhoopRecovery != nil && *in.WhoopRecovery < lowWhoopRecovery {
		recoveryReasons = append(recoveryReasons,
			fmt.Sprintf("whoop recovery at %.0f%%, body asking for a break", *in.WhoopRecovery))
	}
	if in.ReadinessScore != nil && *in.ReadinessScore < lowReadiness {
		recoveryReasons = append(recoveryReasons,
			fmt.Sprintf("readiness score at %.0f, well below baseline", *in.ReadinessScore))
	}
	if len(recoveryReasons) > 0 {
		return Suggestion{
			Action:  SuggestRecoveryFlow,
			Reasons: recoveryReasons,
		}
	}

	var lightReasons []string
	if in.Load.Risk == RiskCaution {
		lightReasons = append(lightReasons,
			fmt.Sprintf("workload ratio at %.2f, creeping into the caution zone", in.Load.ACWR))
	}
	if in.SleepHours != nil && *in.SleepHours < shortSleepHours {
		lightReasons = append(lightReasons,
			fmt.Sprintf("only %.1f hours of sleep last night", *in.SleepHours))
	}
	if len(lightReasons) > 0 {
		return Suggestion{
			Action:  SuggestTechniqueLight,
			Reasons: lightReasons,
		}
	}

	if in.Load.Risk == RiskUndertraining {
		goodRecovery := in.WhoopRecovery != nil && *in.WhoopRecovery >= goodWhoopRecovery
		goodCheckin := in.ReadinessScore != nil && *in.ReadinessScore >= goodReadiness
		if goodRecovery || goodCheckin {
			reasons := []string{"training load below the usual level"}
			if goodRecovery {
				reasons = append(reasons,
					fmt.Sprintf("whoop recovery at %.0f%%", *in.WhoopRecovery))
			}
			if goodCheckin {
				reasons = append(reasons,
					fmt.Sprintf("readiness score at %.0f", *in.ReadinessScore))
			}
			return Suggestion{
				Action:  SuggestPushHard,
				Reasons: reasons,
			}
		}
	}

	return Suggestion{
		Action:  SuggestNormal,
		Reasons: []string{"no red flags, train as planned"},
	}
}
