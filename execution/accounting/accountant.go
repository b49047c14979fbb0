package accounting

// Stats is the cost of one sort-merge join execution
type Stats struct {
	// page reads and writes across sort and join phases
	IOCount int
	// output pages produced by the join
	PagesCount int
	// tuples emitted by the join
	TuplesCount int
}

func (s Stats) Add(other Stats) Stats {
	return Stats{s.IOCount + other.IOCount, s.PagesCount + other.PagesCount, s.TuplesCount + other.TuplesCount}
}

// Accountant counts simulated page I/O of one execution
type Accountant struct {
	ioCount    int
	pagesCount int
	tupleCount int
}

func NewAccountant() *Accountant {
	return &Accountant{}
}

// AddIO counts n page sized reads or writes
func (a *Accountant) AddIO(n int) {
	a.ioCount += n
}

// AddOutputPage counts a join output page. writing it is also an I/O.
func (a *Accountant) AddOutputPage() {
	a.pagesCount++
	a.ioCount++
}

func (a *Accountant) AddTuple() {
	a.tupleCount++
}

func (a *Accountant) GetIOCount() int    { return a.ioCount }
func (a *Accountant) GetPagesCount() int { return a.pagesCount }
func (a *Accountant) GetTuplesCount() int {
	return a.tupleCount
}

func (a *Accountant) Stats() Stats {
	return Stats{a.ioCount, a.pagesCount, a.tupleCount}
}
