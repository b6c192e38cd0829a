package output

// Filter selects which parts of the response are printed.
type Filter int

const (
	FilterAll Filter = iota
	FilterHeadersOnly
	FilterBodyOnly
)

type Options struct {
	Filter      Filter
	EnableColor bool

	Download   bool
	OutputFile string
	Overwrite  bool
}
