package render

import (
	"fmt"

	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

type Pagination string

const (
	// PaginationSingle renders every player on the list message.
	PaginationSingle Pagination = "single"

	// PaginationOverflow renders the first OverflowAfter players on the list
	// message and the rest on a separate overflow message.
	PaginationOverflow Pagination = "overflow"
)

// OverflowAfter is the number of players kept on the list message in
// overflow mode. One row per player, and the platform allows five rows.
const OverflowAfter = 5

type Mode struct {
	Visibility model.Visibility
	Pagination Pagination
}

var DefaultMode = Mode{Visibility: model.VisibilityPublic, Pagination: PaginationSingle}

func ParseMode(visibility, pagination string) (Mode, error) {
	m := DefaultMode

	switch model.Visibility(visibility) {
	case "":
	case model.VisibilityPublic, model.VisibilityEphemeral:
		m.Visibility = model.Visibility(visibility)
	default:
		return m, fmt.Errorf("invalid visibility %q (want public or ephemeral)", visibility)
	}

	switch Pagination(pagination) {
	case "":
	case PaginationSingle, PaginationOverflow:
		m.Pagination = Pagination(pagination)
	default:
		return m, fmt.Errorf("invalid pagination %q (want single or overflow)", pagination)
	}

	return m, nil
}

func (m Mode) String() string {
	return fmt.Sprintf("%s/%s", m.Visibility, m.Pagination)
}
