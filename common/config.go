package common

// kind of scratch storage used for sorted runs
type RunStoreKindID int32

const (
	RUN_STORE_FILE RunStoreKindID = iota
	RUN_STORE_ON_MEMORY
	RUN_STORE_PEBBLE
)

const (
	// max number of tuples a page can hold
	PageCapacity = 10
	// number of page frames available to one sort
	BufferPoolFrames = 4
	// frames reserved for output while merging runs
	OutputBuffers = 1
	// max number of runs merged into one run at a merge pass (fan-in)
	SortBuffers = BufferPoolFrames - OutputBuffers
	// max line length of a serialized tuple in scratch storage
	MaxTupleLineLen = 1024 * 1024
	// separator of key=value pairs in scratch storage
	TupleFieldSeparator = ";"
	// separator of key and value in scratch storage
	TupleKeyValueSeparator = "="

	ActiveLogKindSetting = INFO | WARN | ERROR | FATAL //| DEBUG_INFO | DEBUGGING | RDB_OP_FUNC_CALL
)

// use on memory virtual storage on tests or not
const EnableOnMemStorage = true

// when this is true, virtual storage use is suppressed
// for test case which needs real scratch files
var TempSuppressOnMemStorage = false

// scratch storage used by the command
var RunStoreKind = RUN_STORE_FILE

// directory for scratch run files ("" means os.TempDir())
var ScratchDir = ""

// directory which has source relations (csv files)
var DataDir = "."

// directory where join results are written
var OutDir = "out"
