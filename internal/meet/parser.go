package meet

import (
	"fmt"
	"strings"
)

// Column layout of a time row in the source table. These indices are a
// contract with the site's fixed table rendering and must not change.
const (
	colHomeTime  = 0
	colHomeName  = 1
	colHomeExhib = 2
	colAwayExhib = 5
	colAwayName  = 6
	colAwayTime  = 7

	minTimesRowCells = 8
)

// exhibitionMarker flags the start of an exhibition block wherever it
// appears in the first cell of a row.
const exhibitionMarker = "Exhibition"

// parseState tracks which part of the results table the parser is in.
type parseState int

const (
	stateEvent parseState = iota
	stateTimes
	stateExhibition
)

func (s parseState) String() string {
	switch s {
	case stateEvent:
		return "event"
	case stateTimes:
		return "times"
	case stateExhibition:
		return "exhibition"
	}
	return "unknown"
}

// RowError reports a table row the parser cannot consume: an empty row,
// or a time row with too few cells for the fixed column layout.
type RowError struct {
	Row   int
	Cells int
	State string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed results row %d (%d cells, parsing %s)", e.Row, e.Cells, e.State)
}

// ParseRows converts an ordered stream of table rows into event
// results. Each row is the cell texts of one <tr> in document order.
//
// The machine starts in the event state. Per row, checks apply in this
// order:
//
//  1. A first cell containing "Exhibition" switches to the exhibition
//     state regardless of the current state or cell count.
//  2. A single-cell row starts a new event and switches to the times
//     state. Inside an exhibition block this same row ends the block;
//     the block's own rows are discarded.
//  3. In the event state any other row also starts a new event.
//  4. In the times state, a row with empty home-time and away-time
//     cells is the sentinel ending the event's time block. Any other
//     row contributes exactly one home and one away entry to the
//     current event.
//  5. In the exhibition state all other rows are skipped.
func ParseRows(rows [][]string) ([]EventResult, error) {
	events := make([]EventResult, 0)
	state := stateEvent

	for i, cells := range rows {
		if len(cells) == 0 {
			return nil, &RowError{Row: i, State: state.String()}
		}

		switch {
		case strings.Contains(cells[0], exhibitionMarker):
			state = stateExhibition

		case len(cells) == 1:
			events = append(events, EventResult{Name: cells[0]})
			state = stateTimes

		case state == stateEvent:
			events = append(events, EventResult{Name: cells[0]})
			state = stateTimes

		case state == stateTimes:
			if len(cells) < minTimesRowCells {
				return nil, &RowError{Row: i, Cells: len(cells), State: state.String()}
			}
			if cells[colHomeTime] == "" && cells[colAwayTime] == "" {
				state = stateEvent
				continue
			}
			cur := &events[len(events)-1]
			cur.Home = append(cur.Home, TimeEntry{
				Time:       cells[colHomeTime],
				Swimmer:    cells[colHomeName],
				Exhibition: isExhibitionFlag(cells[colHomeExhib]),
			})
			cur.Away = append(cur.Away, TimeEntry{
				Time:       cells[colAwayTime],
				Swimmer:    cells[colAwayName],
				Exhibition: isExhibitionFlag(cells[colAwayExhib]),
			})

		case state == stateExhibition:
			// Exhibition detail rows are scanned and discarded.
		}
	}

	return events, nil
}

// isExhibitionFlag reports whether a flag cell marks the time as
// exhibition ("ex", "EX", "Ex." and similar).
func isExhibitionFlag(cell string) bool {
	return strings.Contains(strings.ToLower(cell), "ex")
}
