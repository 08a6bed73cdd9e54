package routing

type IShortestPath interface {
	CalcShortestPath() bool
	GetShortestPath() Route
}
