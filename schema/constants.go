package schema

// Custom string types for type safety.
type (
	// ComponentKey names one of the four readiness components.
	ComponentKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// Status represents the status of a person across two snapshots.
	Status string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// LearningStyle is a self-reported learning modality.
	LearningStyle string

	// WorkStyle is a self-reported work preference.
	WorkStyle string

	// ComplexityPreference is the preferred challenge level during gameplay.
	ComplexityPreference string
)

// Readiness components.
const (
	PersonalityComponent  ComponentKey = "personality"
	CognitiveComponent    ComponentKey = "cognitive"
	MotivationalComponent ComponentKey = "motivational"
	BehavioralComponent   ComponentKey = "behavioral"
)

// OverallKey is the pseudo-component used for thresholds on the overall score.
const OverallKey ComponentKey = "overall"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All status supported.
const (
	NewStatus     Status = "new"
	ActiveStatus  Status = "active"
	RemovedStatus Status = "removed"
	UnknownStatus Status = "unknown"
)

// All run store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Learning styles.
const (
	VisualStyle      LearningStyle = "visual"
	AuditoryStyle    LearningStyle = "auditory"
	KinestheticStyle LearningStyle = "kinesthetic"
	ReadingStyle     LearningStyle = "reading"
)

// Work styles.
const (
	CollaborativeWork WorkStyle = "collaborative"
	IndependentWork   WorkStyle = "independent"
	HybridWork        WorkStyle = "hybrid"
)

// Complexity preferences.
const (
	LowComplexity    ComplexityPreference = "low"
	MediumComplexity ComplexityPreference = "medium"
	HighComplexity   ComplexityPreference = "high"
)

// AllComponents lists the components in their canonical order.
var AllComponents = []ComponentKey{PersonalityComponent, CognitiveComponent, MotivationalComponent, BehavioralComponent}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default component weights for the overall score.
func GetDefaultWeights() map[ComponentKey]float64 {
	return map[ComponentKey]float64{
		PersonalityComponent:  0.25,
		CognitiveComponent:    0.25,
		MotivationalComponent: 0.20,
		BehavioralComponent:   0.30,
	}
}
