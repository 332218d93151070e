package business

import "fmt"

// Op identifies a reduction.
type Op int

const (
	// Sum totals the values of a group or column set.
	Sum Op = iota
	// Mean averages the values of a group or column set.
	Mean
	// Count counts the rows per group. Only vertical aggregation supports it.
	Count
)

// String returns the config/wire tag of the op.
func (o Op) String() string {
	switch o {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	case Count:
		return "count"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// ParseOp converts a config/wire tag into an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "sum":
		return Sum, nil
	case "mean":
		return Mean, nil
	case "count":
		return Count, nil
	}
	return 0, fmt.Errorf("unknown op %q", s)
}

// Strategy reduces a table into its supernode aggregate. Implementations
// support a subset of ops and return ErrUnsupportedOperation for the rest.
// Reduce never mutates tbl or supernodes.
type Strategy interface {
	Reduce(op Op, tbl Table, supernodes SupernodeMap) (Table, error)
}

// Aggregator binds a dataset and a supernode map to one strategy. It holds
// no state across calls beyond those three values.
type Aggregator struct {
	table      Table
	supernodes SupernodeMap
	strategy   Strategy
}

// NewAggregator binds tbl and supernodes to strategy.
func NewAggregator(tbl Table, supernodes SupernodeMap, strategy Strategy) Aggregator {
	return Aggregator{table: tbl, supernodes: supernodes, strategy: strategy}
}

// Sum reduces the bound table with the Sum op.
func (a Aggregator) Sum() (Table, error) {
	return a.strategy.Reduce(Sum, a.table, a.supernodes)
}

// Mean reduces the bound table with the Mean op.
func (a Aggregator) Mean() (Table, error) {
	return a.strategy.Reduce(Mean, a.table, a.supernodes)
}

// Count reduces the bound table with the Count op. Strategies without a
// count mode return ErrUnsupportedOperation.
func (a Aggregator) Count() (Table, error) {
	return a.strategy.Reduce(Count, a.table, a.supernodes)
}
