// Standard attribute keys for errbound log records.
//
// Keys follow a dotted hierarchy ("data.samples", "bound.confidence") so log
// output can be filtered by prefix.

package log

// Operation context.
const (
	// ComponentKey identifies the package emitting the record.
	// Examples: "dataset", "bound", "chart", "experiment"
	ComponentKey = "component"

	// OperationKey names the step being performed.
	OperationKey = "op"

	// ModelNameKey identifies a fitted model, e.g. "LinearRegression".
	ModelNameKey = "model.name"
)

// Input data.
const (
	// FileKey is the path of an input or output file.
	FileKey = "data.file"

	// FilesKey is the number of input files.
	FilesKey = "data.files"

	// SamplesKey is the number of observations.
	SamplesKey = "data.samples"

	// ValidRelativeKey is the number of observations with a defined relative error.
	ValidRelativeKey = "data.valid_relative"

	// ColumnsKey lists the header columns of an input file.
	ColumnsKey = "data.columns"
)

// Statistics.
const (
	ConfidenceKey       = "bound.confidence"
	MeanKey             = "bound.mean"
	StdDevKey           = "bound.stddev"
	RecommendedBoundKey = "bound.recommended"
	QQCorrelationKey    = "bound.qq_r"
	R2ScoreKey          = "metrics.r2_score"
)

// Experiment harness.
const (
	TrialsKey  = "experiment.trials"
	WorkersKey = "experiment.workers"
	SeedKey    = "experiment.seed"
)

// Performance and errors.
const (
	DurationMsKey = "perf.duration_ms"
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	SuggestionKey = "error.suggestion"
)

// Standard values for OperationKey.
const (
	OperationLoad      = "load"
	OperationDerive    = "derive"
	OperationAggregate = "aggregate"
	OperationReport    = "report"
	OperationRender    = "render"
	OperationFit       = "fit"
	OperationGenerate  = "generate"
	OperationRun       = "run"
)

// Standard values for ErrorCodeKey.
const (
	ErrorEmptyInput       = "EMPTY_INPUT"
	ErrorSchema           = "SCHEMA"
	ErrorParse            = "PARSE"
	ErrorInsufficientData = "INSUFFICIENT_DATA"
	ErrorNoValidRelative  = "NO_VALID_RELATIVE"
)
