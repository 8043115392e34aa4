package scoring

import "pubg-tournament-tracker/models"

// aggregatePlayers groups stat rows by exact player name, preserving the
// order in which each name was first seen. That first-seen order is the
// documented tie-break for MVP and top-damage titles, so callers that need a
// deterministic answer must pass rows in a stable order.
func aggregatePlayers(stats []models.PlayerStat) []models.PlayerAggregate {
	byName := make(map[string]*models.PlayerAggregate, len(stats))
	order := make([]string, 0, len(stats))
	for _, st := range stats {
		agg, ok := byName[st.PlayerName]
		if !ok {
			agg = &models.PlayerAggregate{PlayerName: st.PlayerName}
			byName[st.PlayerName] = agg
			order = append(order, st.PlayerName)
		}
		agg.TotalKills += st.Kills
		agg.TotalDamage += st.Damage
		agg.MatchesCount++
	}

	out := make([]models.PlayerAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// ComputeMVP returns the player with the highest summed kill count, or nil
// when no stats exist. Ties keep the earlier-seen player.
func ComputeMVP(stats []models.PlayerStat) *models.PlayerAggregate {
	var mvp *models.PlayerAggregate
	for _, agg := range aggregatePlayers(stats) {
		agg := agg
		if mvp == nil || agg.TotalKills > mvp.TotalKills {
			mvp = &agg
		}
	}
	return mvp
}

// ComputeTopDamage is the damage-summing counterpart of ComputeMVP. The two
// titles are independent: the same player may hold both or neither.
func ComputeTopDamage(stats []models.PlayerStat) *models.PlayerAggregate {
	var top *models.PlayerAggregate
	for _, agg := range aggregatePlayers(stats) {
		agg := agg
		if top == nil || agg.TotalDamage > top.TotalDamage {
			top = &agg
		}
	}
	return top
}
