package coaching

import "github.com/pable/lol-coach/internal/model"

func tip(id string, cat model.Category, title, desc string) model.CoachingTip {
	return model.CoachingTip{ID: id, Category: cat, Title: title, Description: desc}
}

var (
	tipLastHitting = tip("cs-last-hitting", model.CategoryCS,
		"Last-hit before you trade",
		"Time your autos on low minions first and only trade when no minion is about to die.")
	tipWaveManagement = tip("cs-wave-management", model.CategoryCS,
		"Manage the wave before roaming",
		"Shove the wave into the enemy tower before you leave lane so you lose as little CS as possible.")
	tipSideWaves = tip("cs-side-waves", model.CategoryCS,
		"Catch side waves",
		"Between objectives, clear the side lane closest to you instead of grouping with nothing to do.")

	tipTrinket = tip("vision-trinket-cooldown", model.CategoryVision,
		"Use your trinket on cooldown",
		"A ward that sits in your inventory gives no vision; place it as soon as it is available.")
	tipObjectiveVision = tip("vision-objective-setup", model.CategoryVision,
		"Ward before objectives spawn",
		"Place wards around the next dragon or baron about a minute before it spawns.")
	tipControlWard = tip("vision-control-ward", model.CategoryVision,
		"Always carry a control ward",
		"Buy a control ward on every back and place it in river or at a jungle entrance.")
	tipSweeper = tip("vision-sweeper", model.CategoryVision,
		"Clear enemy vision",
		"Swap to the sweeper when your team plans an objective and clear the wards on the approach.")

	tipObjectiveTimers = tip("objective-timers", model.CategoryObjective,
		"Track objective timers",
		"Note when dragon and baron respawn and move toward the pit with your team before they are up.")
	tipObjectivePriority = tip("objective-lane-priority", model.CategoryObjective,
		"Get lane priority first",
		"Push your wave before an objective so you can move to the pit without losing CS or tower plates.")
	tipObjectiveTrade = tip("objective-cross-map", model.CategoryObjective,
		"Trade objectives you cannot contest",
		"When an objective is lost, take a tower or camp on the other side of the map instead.")

	tipDeathTimers = tip("positioning-death-timers", model.CategoryPositioning,
		"Respect death timers",
		"Every death late in the game hands the enemy a free objective; play safe when key fights are near.")
	tipFogFacing = tip("positioning-fog", model.CategoryPositioning,
		"Avoid face-checking fog",
		"Do not walk into unwarded brush alone; sweep or let a tank check it first.")

	tipTradePatterns = tip("trading-short-trades", model.CategoryTrading,
		"Take short trades",
		"Trade when the enemy uses a key ability or goes for a last hit, then back off before minions retaliate.")
	tipFightSelection = tip("trading-fight-selection", model.CategoryTrading,
		"Pick fights with numbers",
		"Join fights where your team has more champions nearby and avoid fights you arrive at late.")
)

// Tips per error type, in the order they are handed out.
var byErrorType = map[model.ErrorType][]model.CoachingTip{
	model.ErrorCSMissing:   {tipLastHitting, tipWaveManagement},
	model.ErrorVision:      {tipTrinket, tipObjectiveVision},
	model.ErrorControlWard: {tipControlWard},
	model.ErrorObjective:   {tipObjectiveTimers, tipObjectivePriority},
}

// Fallback tips per score category.
var byCategory = map[model.Category][]model.CoachingTip{
	model.CategoryCS:          {tipLastHitting, tipSideWaves, tipWaveManagement},
	model.CategoryVision:      {tipControlWard, tipSweeper, tipTrinket},
	model.CategoryPositioning: {tipDeathTimers, tipFogFacing},
	model.CategoryObjective:   {tipObjectiveTimers, tipObjectiveTrade},
	model.CategoryTrading:     {tipTradePatterns, tipFightSelection},
}
