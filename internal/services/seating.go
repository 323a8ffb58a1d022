package services

import "weddingplanner/internal/domain"

// AutoAssignSeats places unassigned guests at tables in a single greedy pass.
//
// Guests are taken in input order and tables in plan order. A guest with a named
// plus-one needs two seats. When the current table cannot fit the next guest the
// cursor moves to the following table with an empty count; once tables run out the
// remaining guests stay unassigned. Guests that already have a table are skipped.
// Nothing is rebalanced and the input slices are not modified.
func AutoAssignSeats(guests []*domain.Guest, tables []domain.Table) domain.AutoAssignResult {
	res := domain.AutoAssignResult{
		Assigned:   make([]domain.SeatAssignment, 0),
		Unassigned: make([]string, 0),
	}
	idx, occupancy := 0, 0
	for i, g := range guests {
		if g.TableNumber != nil {
			continue
		}
		if idx >= len(tables) {
			res.Unassigned = append(res.Unassigned, unassignedIDs(guests[i:])...)
			break
		}
		seats := 1
		if g.HasNamedPlusOne() {
			seats = 2
		}
		if occupancy+seats > tables[idx].Seats {
			idx++
			occupancy = 0
		}
		if idx >= len(tables) {
			res.Unassigned = append(res.Unassigned, unassignedIDs(guests[i:])...)
			break
		}
		res.Assigned = append(res.Assigned, domain.SeatAssignment{
			GuestID:     g.ID,
			TableNumber: tables[idx].Number,
			Seats:       seats,
		})
		occupancy += seats
	}
	return res
}

func unassignedIDs(guests []*domain.Guest) []string {
	ids := make([]string, 0, len(guests))
	for _, g := range guests {
		if g.TableNumber == nil {
			ids = append(ids, g.ID)
		}
	}
	return ids
}
