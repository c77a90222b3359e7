package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcheetah777/engine/internal/rng"
	"github.com/thcheetah777/engine/internal/table"
)

func simulatorTables() []table.Table {
	return []table.Table{
		{
			TableID: "a",
			Name:    "single",
			Buckets: []table.Bucket{{Position: 0, Label: "all", Low: 0, High: 100}},
		},
		{
			TableID: "b",
			Name:    "triple",
			Buckets: []table.Bucket{
				{Position: 0, Label: "common", Low: 0, High: 60},
				{Position: 1, Label: "uncommon", Low: 60, High: 90},
				{Position: 2, Label: "rare", Low: 90, High: 100},
			},
		},
	}
}

func TestRollSimulatorDropsResultForOtherTable(t *testing.T) {
	list := simulatorTables()
	m := RollSimulatorModel{list: list, tableIdx: 1}

	sim := table.Simulate(rng.New(1), &list[0], 100)
	updated, cmd := m.Update(simulationMsg{tableID: "a", sim: sim})
	assert.Nil(t, cmd)

	m = updated.(RollSimulatorModel)
	assert.Nil(t, m.result)
	assert.NotPanics(t, func() { m.View() })
	assert.Contains(t, m.View(), "Press Enter to simulate.")
}

func TestRollSimulatorKeepsResultForSelectedTable(t *testing.T) {
	list := simulatorTables()
	m := RollSimulatorModel{list: list, tableIdx: 1}

	sim := table.Simulate(rng.New(1), &list[1], 1000)
	updated, _ := m.Update(simulationMsg{tableID: "b", sim: sim})

	m = updated.(RollSimulatorModel)
	require.NotNil(t, m.result)
	assert.Equal(t, 1000, m.result.Rolls)
	assert.Contains(t, m.View(), "uncommon")
}

func TestRollSimulatorReloadClearsResult(t *testing.T) {
	list := simulatorTables()
	sim := table.Simulate(rng.New(1), &list[0], 10)
	m := RollSimulatorModel{list: list, result: &sim}

	updated, _ := m.Update(simulatorTablesMsg{tables: list[1:]})

	m = updated.(RollSimulatorModel)
	assert.Nil(t, m.result)
	assert.Equal(t, 0, m.tableIdx)
	assert.NotPanics(t, func() { m.View() })
}
