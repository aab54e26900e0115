package mbal

import (
	"sort"
	"strings"
)

// Fields is a flat set of named model inputs, e.g. {"N": 1e7, "Bo": 1.58, "M": 0.25}.
//
// Names are unique across the reservoir, phase and operation records, so a
// bare name always routes to one place. A qualified name such as "phase.Bo"
// is accepted as well.
type Fields map[string]float64

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// record names the part of a model a field belongs to.
type record string

const (
	recordModel     record = "model"
	recordReservoir record = "reservoir"
	recordPhase     record = "phase"
	recordOperation record = "operation"
)

// quantity flags the three mutually dependent volume quantities.
type quantity uint8

const (
	qtyN quantity = 1 << iota
	qtyG
	qtyM
)

type field struct {
	name   string
	record record
	volume quantity // non-zero for N, G and M
	set    func(m *Model, x float64)
	get    func(m *Model) Value
}

var fieldTable = []field{
	{name: "M", record: recordModel, volume: qtyM,
		set: func(m *Model, x float64) { m.ratio = Known(x) },
		get: func(m *Model) Value { return m.ratio }},

	{name: "P", record: recordReservoir,
		set: func(m *Model, x float64) { m.reservoir.P = Known(x) },
		get: func(m *Model) Value { return m.reservoir.P }},
	{name: "Sw", record: recordReservoir,
		set: func(m *Model, x float64) { m.reservoir.Sw = Known(x) },
		get: func(m *Model) Value { return m.reservoir.Sw }},
	{name: "N", record: recordReservoir, volume: qtyN,
		set: func(m *Model, x float64) { m.reservoir.N = Known(x) },
		get: func(m *Model) Value { return m.reservoir.N }},
	{name: "G", record: recordReservoir, volume: qtyG,
		set: func(m *Model, x float64) { m.reservoir.G = Known(x) },
		get: func(m *Model) Value { return m.reservoir.G }},
	{name: "We", record: recordReservoir,
		set: func(m *Model, x float64) { m.reservoir.We = x },
		get: func(m *Model) Value { return Known(m.reservoir.We) }},

	{name: "Bo", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Bo = x },
		get: func(m *Model) Value { return Known(m.phase.Bo) }},
	{name: "Bw", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Bw = x },
		get: func(m *Model) Value { return Known(m.phase.Bw) }},
	{name: "Bg", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Bg = Known(x) },
		get: func(m *Model) Value { return m.phase.Bg }},
	{name: "cw", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Cw = x },
		get: func(m *Model) Value { return Known(m.phase.Cw) }},
	{name: "cf", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Cf = x },
		get: func(m *Model) Value { return Known(m.phase.Cf) }},
	{name: "Rs", record: recordPhase,
		set: func(m *Model, x float64) { m.phase.Rs = Known(x) },
		get: func(m *Model) Value { return m.phase.Rs }},

	{name: "Np", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.Np = x },
		get: func(m *Model) Value { return Known(m.operation.Np) }},
	{name: "Gp", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.Gp = x },
		get: func(m *Model) Value { return Known(m.operation.Gp) }},
	{name: "Wp", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.Wp = x },
		get: func(m *Model) Value { return Known(m.operation.Wp) }},
	{name: "Ginj", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.Ginj = x },
		get: func(m *Model) Value { return Known(m.operation.Ginj) }},
	{name: "Winj", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.Winj = x },
		get: func(m *Model) Value { return Known(m.operation.Winj) }},
	{name: "GOR", record: recordOperation,
		set: func(m *Model, x float64) { m.operation.GOR = Known(x) },
		get: func(m *Model) Value { return m.operation.GOR }},
}

// lookupField resolves a bare or qualified field name.
func lookupField(key string) (field, bool) {
	prefix, name, qualified := strings.Cut(key, ".")
	if !qualified {
		name = prefix
	}
	for _, f := range fieldTable {
		if f.name != name {
			continue
		}
		if qualified && record(prefix) != f.record {
			return field{}, false
		}
		return f, true
	}
	return field{}, false
}

// FieldNames returns every recognized bare field name in table order.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, f := range fieldTable {
		names[i] = f.name
	}
	return names
}
