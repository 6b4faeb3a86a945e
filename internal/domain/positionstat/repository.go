package positionstat

import "context"

// Filter narrows List. Team is optional; empty means every team.
type Filter struct {
	Period string
	Team   string
}

// Repository describes position-stat reads needed by the ranking use case.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Row, error)
	ListPeriods(ctx context.Context) ([]string, error)
}
