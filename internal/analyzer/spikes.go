package analyzer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pable/go-lol-insights/internal/model"
)

// spreeWindowMS is the anchored window for killing-spree detection:
// 2+ kills by the same killer within 30 seconds of an anchor kill.
const spreeWindowMS = 30_000

const spreeMinKills = 2

// ItemTable is the reference table of completed items that count as a
// power spike, keyed by item id. Item data shifts every game patch, so the
// table is versioned and loadable from a file instead of being baked into
// the detection logic.
type ItemTable struct {
	Patch string         `json:"patch"`
	Items map[int]string `json:"items"`
}

// DefaultItemTable returns the builtin spike-item table. It covers a
// sample of common legendary completions, not the full item set; pass a
// patch-specific file to LoadItemTable for anything current.
func DefaultItemTable() *ItemTable {
	return &ItemTable{
		Patch: "builtin",
		Items: map[int]string{
			3006: "Berserker's Greaves",
			3031: "Infinity Edge",
			3074: "Ravenous Hydra",
			3089: "Rabadon's Deathcap",
			3153: "Blade of the Ruined King",
			4633: "Riftmaker",
			6653: "Liandry's Torment",
			6655: "Luden's Companion",
			6672: "Kraken Slayer",
			6675: "Navori Flickerblade",
		},
	}
}

// LoadItemTable reads a spike-item table from a JSON file of the shape
// {"patch": "14.18", "items": {"3031": "Infinity Edge", ...}}.
func LoadItemTable(path string) (*ItemTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item table: %w", err)
	}
	var table ItemTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse item table %s: %w", path, err)
	}
	if len(table.Items) == 0 {
		return nil, fmt.Errorf("item table %s has no items", path)
	}
	return &table, nil
}

// TrackPowerSpikes scans the timeline once for every participant's power
// spikes. The result is indexed by participant id (1-10, all keys present)
// so death analysis can look spikes up without rescanning.
func TrackPowerSpikes(timeline *model.Timeline, items *ItemTable) map[int][]model.PowerSpike {
	if items == nil {
		items = DefaultItemTable()
	}

	spikes := make(map[int][]model.PowerSpike, 10)
	for id := 1; id <= 10; id++ {
		spikes[id] = nil
	}

	events := timeline.AllEvents()

	// Item completions.
	for _, e := range events {
		if e.Type != model.EventItemPurchased {
			continue
		}
		name, ok := items.Items[e.ItemID]
		if !ok {
			continue
		}
		spikes[e.ParticipantID] = append(spikes[e.ParticipantID], model.PowerSpike{
			TimeMinutes: minutes(e.Timestamp),
			Type:        model.SpikeItemCompletion,
			Detail:      name,
		})
	}

	// Killing sprees: anchored window per kill, deduplicated by
	// (time, type) so overlapping windows don't register twice.
	var kills []model.Event
	for _, e := range events {
		if e.Type == model.EventChampionKill {
			kills = append(kills, e)
		}
	}
	for i, anchor := range kills {
		killerID := anchor.KillerID
		if killerID == 0 {
			continue // minion or turret execution
		}
		streak := 1
		windowEnd := anchor.Timestamp + spreeWindowMS
		for j := i + 1; j < len(kills); j++ {
			if kills[j].KillerID == killerID && kills[j].Timestamp <= windowEnd {
				streak++
			}
		}
		if streak < spreeMinKills {
			continue
		}
		spike := model.PowerSpike{
			TimeMinutes: minutes(anchor.Timestamp),
			Type:        model.SpikeKillingSpree,
			Detail:      fmt.Sprintf("%d kills", streak),
		}
		if hasSpikeAt(spikes[killerID], spike.TimeMinutes, spike.Type) {
			continue
		}
		spikes[killerID] = append(spikes[killerID], spike)
	}

	return spikes
}

func hasSpikeAt(list []model.PowerSpike, timeMinutes float64, spikeType string) bool {
	for _, s := range list {
		if s.TimeMinutes == timeMinutes && s.Type == spikeType {
			return true
		}
	}
	return false
}
