package metrics

// Noop is a Provider whose instruments discard every measurement. It is the
// default provider when no metrics are configured.
type Noop struct{}

// NewNoop constructs a Provider that discards all metrics.
func NewNoop() Noop { return Noop{} }

func (Noop) Counter(_ string, _ ...InstrumentOption) Counter             { return noopInstrument{} }
func (Noop) UpDownCounter(_ string, _ ...InstrumentOption) UpDownCounter { return noopInstrument{} }
func (Noop) Histogram(_ string, _ ...InstrumentOption) Histogram         { return noopInstrument{} }

type noopInstrument struct{}

func (noopInstrument) Add(_ int64)      {}
func (noopInstrument) Record(_ float64) {}
