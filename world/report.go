package world

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/tuannh982/vector-map/utils/collections"
	"github.com/tuannh982/vector-map/world/commons"
)

// WriteReport renders the world counters and the first limit entities in
// dense order. It reads the entity map, so the world must not be running.
func (w *World) WriteReport(out io.Writer, limit int) {
	stats := w.Stats()
	fmt.Fprintf(out, "WORLD %s\n", w.name)
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"TICK", "ENTITIES", "SPAWNED", "DESPAWNED", "RELOCATED", "DROPPED", "BATCHES", "CENTER"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.Append([]string{
		strconv.FormatUint(stats.Tick, 10),
		strconv.Itoa(stats.Entities),
		strconv.FormatUint(stats.Spawned, 10),
		strconv.FormatUint(stats.Despawned, 10),
		strconv.FormatUint(stats.Relocated, 10),
		strconv.FormatUint(stats.Dropped, 10),
		strconv.Itoa(stats.Batches),
		fmt.Sprintf("(%.2f,%.2f)", stats.CenterX, stats.CenterY),
	})
	table.Render()

	if limit <= 0 || w.entities.Size() == 0 {
		return
	}
	var data [][]string
	rows := collections.MapEntries(w.entities, func(slot int, e collections.Entry[commons.EntityID, *commons.Transform]) []string {
		return []string{
			strconv.Itoa(slot),
			e.Key.String(),
			strconv.Itoa(slot / w.cfg.BatchSize),
			fmt.Sprintf("%.2f", e.Value.X),
			fmt.Sprintf("%.2f", e.Value.Y),
			fmt.Sprintf("%.2f", e.Value.Speed()),
		}
	})
	for row := range rows {
		if len(data) == limit {
			break
		}
		data = append(data, row)
	}
	table = tablewriter.NewWriter(out)
	table.SetHeader([]string{"SLOT", "ID", "BATCH", "X", "Y", "SPEED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(data)
	table.Render()
}

// FastMovers returns the IDs of entities moving faster than speed, in dense
// order.
func (w *World) FastMovers(speed float64) []commons.EntityID {
	ids := make([]commons.EntityID, 0)
	movers := collections.FilterMap(w.entities, func(_ int, e collections.Entry[commons.EntityID, *commons.Transform]) (commons.EntityID, bool) {
		return e.Key, e.Value.Speed() > speed
	})
	for id := range movers {
		ids = append(ids, id)
	}
	return ids
}
