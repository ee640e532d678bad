package response

import (
	"github.com/deanb221/caravan/internal/usecase/queries"
)

type CaravanListResponse struct {
	Caravans []*queries.CaravanListItem `json:"caravans"`
}

func FromCaravanList(items []*queries.CaravanListItem) *CaravanListResponse {
	if items == nil {
		items = []*queries.CaravanListItem{}
	}
	return &CaravanListResponse{Caravans: items}
}

// ConflictDetail is the 409 body detail for a booking conflict.
type ConflictDetail struct {
	Conflicts []string `json:"conflicts"`
}
