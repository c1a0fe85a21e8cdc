package route

type RouteFilter struct {
	EmployeeID *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}
