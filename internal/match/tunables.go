package match

// Tunables are the auto-accept thresholds and margins on the 0-100 score
// scale. The defaults are part of the public contract: tests treat them as
// fixed constants, and the configuration layer may override them.
type Tunables struct {
	SeriesAutoThreshold float64
	SeriesAutoMargin    float64
	IssueAutoThreshold  float64
	IssueAutoMargin     float64
}

// Default tunable values.
const (
	DefaultSeriesAutoThreshold = 80.0
	DefaultSeriesAutoMargin    = 10.0
	DefaultIssueAutoThreshold  = 75.0
	DefaultIssueAutoMargin     = 8.0
)

// DefaultTunables returns the documented default decision policy.
func DefaultTunables() Tunables {
	return Tunables{
		SeriesAutoThreshold: DefaultSeriesAutoThreshold,
		SeriesAutoMargin:    DefaultSeriesAutoMargin,
		IssueAutoThreshold:  DefaultIssueAutoThreshold,
		IssueAutoMargin:     DefaultIssueAutoMargin,
	}
}

func (t Tunables) normalized() Tunables {
	def := DefaultTunables()
	if t.SeriesAutoThreshold <= 0 {
		t.SeriesAutoThreshold = def.SeriesAutoThreshold
	}
	if t.SeriesAutoMargin <= 0 {
		t.SeriesAutoMargin = def.SeriesAutoMargin
	}
	if t.IssueAutoThreshold <= 0 {
		t.IssueAutoThreshold = def.IssueAutoThreshold
	}
	if t.IssueAutoMargin <= 0 {
		t.IssueAutoMargin = def.IssueAutoMargin
	}
	return t
}
