package leetify

// DataSource names where a match record came from. Values other than the
// known constants are passed through to the API unchanged.
type DataSource string

const (
	DataSourceFACEIT      DataSource = "faceit"
	DataSourceMatchmaking DataSource = "matchmaking"
)

func ParseDataSource(s string) DataSource {
	return DataSource(s)
}

func (d DataSource) String() string { return string(d) }

func (d DataSource) IsKnown() bool {
	return d == DataSourceFACEIT || d == DataSourceMatchmaking
}
