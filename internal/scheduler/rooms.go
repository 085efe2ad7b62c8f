package scheduler

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type cellKey struct {
	classID string
	day     int
	period  int
}

// fits reports whether a class can sit in a room. Unknown sizes or capacities fit anywhere.
func fits(class Class, room Room) bool {
	return room.Capacity <= 0 || class.Size <= 0 || class.Size <= room.Capacity
}

// assignClassrooms matches every lecture cell of the solved grids to a free classroom, one slot at a
// time, using a largest bipartite matching. Cells that cannot be matched are absent from the result.
func assignClassrooms(p *Problem) (map[cellKey]string, error) {
	assigned := make(map[cellKey]string)
	classrooms := lo.Filter(p.Rooms, func(r Room, _ int) bool { return r.Kind == RoomClassroom })
	if len(classrooms) == 0 {
		return assigned, nil
	}
	classes := lo.KeyBy(p.Classes, func(c Class) string { return c.ID })

	for d, day := range p.Config.WorkingDays {
		for period := 0; period < p.Config.PeriodsPerDay; period++ {
			lectures := lo.Filter(p.Classes, func(c Class, _ int) bool {
				cell := p.State.ClassCell(c.ID, d, period)
				return cell != nil && !cell.IsLab
			})
			open := lo.Filter(classrooms, func(r Room, _ int) bool {
				return roomAllows(r.Availability, day, period+1)
			})
			if len(lectures) == 0 || len(open) == 0 {
				continue
			}

			left := lo.Map(lectures, func(c Class, _ int) any { return c.ID })
			right := lo.Map(open, func(r Room, _ int) any { return r })
			neighbours := func(classAny, roomAny any) (bool, error) {
				return fits(classes[classAny.(string)], roomAny.(Room)), nil
			}
			graph, err := bipartitegraph.NewBipartiteGraph(left, right, neighbours)
			if err != nil {
				return nil, err
			}
			for _, edge := range graph.LargestMatching() {
				class, room := lectures[edge.Node1], open[edge.Node2-len(lectures)]
				assigned[cellKey{classID: class.ID, day: d, period: period}] = room.ID
			}
		}
	}
	return assigned, nil
}
