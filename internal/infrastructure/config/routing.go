package config

// RoutingConfig holds route planning configuration
type RoutingConfig struct {
	// HeuristicFactor scales the straight-line goal distance when
	// ordering the search frontier. Zero degenerates to plain Dijkstra.
	HeuristicFactor float64 `mapstructure:"heuristic_factor" validate:"min=0"`

	// DefaultModes restricts planning to these flight modes when a
	// request does not name its own (e.g. ["BURN","CRUISE","DRIFT"])
	DefaultModes []string `mapstructure:"default_modes"`

	// OnlyMarkets restricts route vertices to marketplaces by default
	OnlyMarkets bool `mapstructure:"only_markets"`
}
