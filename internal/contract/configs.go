package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultThreshold   = 50.0
	DefaultListen      = ":8080"
	MaxGenerate        = 100000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateFormat is accepted for --as-of in addition to DateTimeFormat.
const DateFormat = "2006-01-02"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRawInput holds custom component weights from the YAML config file.
// Pointer fields distinguish "not provided" from zero.
type WeightsRawInput struct {
	Personality  *float64 `mapstructure:"personality"`
	Cognitive    *float64 `mapstructure:"cognitive"`
	Motivational *float64 `mapstructure:"motivational"`
	Behavioral   *float64 `mapstructure:"behavioral"`
}

// ThresholdsRawInput holds program-readiness minimums from the YAML config file.
type ThresholdsRawInput struct {
	Overall      *float64 `mapstructure:"overall"`
	Personality  *float64 `mapstructure:"personality"`
	Cognitive    *float64 `mapstructure:"cognitive"`
	Motivational *float64 `mapstructure:"motivational"`
	Behavioral   *float64 `mapstructure:"behavioral"`
}

// Config holds the runtime configuration for scoring.
// This struct is the "final, validated" config.
type Config struct {
	InputPath   string
	Generate    int
	Seed        uint64
	AsOf        time.Time
	AsOfFixed   bool // AsOf came from configuration rather than the clock
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Explain     bool
	Insights    bool
	Department  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	LogLevel    string
	Listen      string

	CompareMode bool
	BasePath    string
	TargetPath  string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// CustomWeights holds only the weights the user provided
	CustomWeights map[schema.ComponentKey]float64

	// Params is the engine tuning with custom weights and tuning overrides applied
	Params algo.Params

	// Thresholds maps the overall key and each component to its minimum score
	Thresholds map[schema.ComponentKey]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Input selection ---
	Input    string `mapstructure:"input"`
	Generate int    `mapstructure:"generate"`
	Seed     uint64 `mapstructure:"seed"`
	AsOf     string `mapstructure:"as-of"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Department     string `mapstructure:"department"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	LogLevel       string `mapstructure:"log-level"`

	// --- Fields from peopleCmd.Flags() ---
	Detail   bool `mapstructure:"detail"`
	Explain  bool `mapstructure:"explain"`
	Insights bool `mapstructure:"insights"`

	// --- Fields from compareCmd.Flags() ---
	BasePath   string `mapstructure:"base"`
	TargetPath string `mapstructure:"target"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Fields from serveCmd.Flags() ---
	Listen string `mapstructure:"listen"`

	// --- Sections from the config file ---
	Weights    WeightsRawInput    `mapstructure:"weights"`
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
	Tuning     map[string]float64 `mapstructure:"tuning"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Params = c.Params.Clone()
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.ComponentKey]float64, len(c.CustomWeights))
		maps.Copy(clone.CustomWeights, c.CustomWeights)
	}
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.ComponentKey]float64, len(c.Thresholds))
		maps.Copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// HasInput reports whether a population source was configured.
func (c *Config) HasInput() bool {
	return c.InputPath != "" || c.Generate > 0
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processInputSource(cfg, input); err != nil {
		return err
	}
	if err := processCompareMode(cfg, input); err != nil {
		return err
	}
	if err := processParams(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the flat fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Insights = input.Insights
	cfg.Department = strings.TrimSpace(input.Department)
	cfg.Width = input.Width
	cfg.LogLevel = input.LogLevel

	cfg.Listen = strings.TrimSpace(input.Listen)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	backend := strings.ToLower(strings.TrimSpace(input.StoreBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processInputSource handles the population source and the as-of instant.
func processInputSource(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.Input)
	cfg.Seed = input.Seed

	if input.Generate < 0 || input.Generate > MaxGenerate {
		return fmt.Errorf("generate must be between 0 and %d (received %d)", MaxGenerate, input.Generate)
	}
	cfg.Generate = input.Generate

	if cfg.InputPath != "" && cfg.Generate > 0 {
		return fmt.Errorf("--input and --generate cannot be used together")
	}

	asOf, err := ParseAsOf(input.AsOf, time.Now())
	if err != nil {
		return err
	}
	cfg.AsOf = asOf
	cfg.AsOfFixed = strings.TrimSpace(input.AsOf) != ""
	return nil
}

// ParseAsOf parses an RFC3339 timestamp or a plain date. Empty means now.
func ParseAsOf(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as-of '%s'. Expected RFC3339 or YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// processCompareMode handles the snapshot paths for compare.
func processCompareMode(cfg *Config, input *ConfigRawInput) error {
	cfg.BasePath = strings.TrimSpace(input.BasePath)
	cfg.TargetPath = strings.TrimSpace(input.TargetPath)

	if cfg.BasePath == "" && cfg.TargetPath == "" {
		cfg.CompareMode = false
		return nil
	}
	cfg.CompareMode = true

	if cfg.BasePath == "" {
		return fmt.Errorf("must specify --base when running the compare command")
	}
	if cfg.TargetPath == "" {
		return fmt.Errorf("must specify --target when running the compare command")
	}
	return nil
}

// ProcessWeightsRawInput returns the provided weights and the defaults merged with them.
// When validateSum is true and any weight was provided, the merged weights must sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (custom, merged map[schema.ComponentKey]float64, err error) {
	custom = make(map[schema.ComponentKey]float64)
	provided := []struct {
		key   schema.ComponentKey
		value *float64
	}{
		{schema.PersonalityComponent, weights.Personality},
		{schema.CognitiveComponent, weights.Cognitive},
		{schema.MotivationalComponent, weights.Motivational},
		{schema.BehavioralComponent, weights.Behavioral},
	}
	for _, p := range provided {
		if p.value == nil {
			continue
		}
		if *p.value < 0 {
			return nil, nil, fmt.Errorf("weight for %s cannot be negative (received %.3f)", p.key, *p.value)
		}
		custom[p.key] = *p.value
	}

	merged = schema.GetDefaultWeights()
	maps.Copy(merged, custom)
	if merged[schema.BehavioralComponent] <= 0 {
		return nil, nil, fmt.Errorf("weight for %s must be greater than 0", schema.BehavioralComponent)
	}

	if validateSum && len(custom) > 0 {
		sum := 0.0
		for _, key := range schema.AllComponents {
			sum += merged[key]
		}
		if sum < 0.999 || sum > 1.001 {
			return nil, nil, fmt.Errorf("component weights must sum to 1.0, got %.3f", sum)
		}
	}
	return custom, merged, nil
}

// tuningFields maps each tuning key to the Params field it overrides.
func tuningFields(p *algo.Params) map[string]*float64 {
	return map[string]*float64{
		"default_role_score":       &p.DefaultRoleScore,
		"derived_watermark":        &p.DerivedWatermark,
		"derived_bonus_rate":       &p.DerivedBonusRate,
		"derived_bonus_cap":        &p.DerivedBonusCap,
		"engagement_max":           &p.EngagementMax,
		"engagement_min":           &p.EngagementMin,
		"cognitive_window_days":    &p.CognitiveRecency.Window,
		"cognitive_half_life_days": &p.CognitiveRecency.Scale,
		"cognitive_floor":          &p.CognitiveRecency.Floor,
		"goal_breadth_target":      &p.GoalBreadthTarget,
		"motivational_bonus":       &p.MotivationalBonus,
		"motivational_window_days": &p.MotivationalRecency.Window,
		"motivational_decay_days":  &p.MotivationalRecency.Scale,
		"motivational_floor":       &p.MotivationalRecency.Floor,
		"rating_scale":             &p.RatingScale,
		"high_performer_threshold": &p.HighPerformerThreshold,
		"high_performer_rate":      &p.HighPerformerRate,
		"high_performer_cap":       &p.HighPerformerCap,
		"cognitive_stale_days":     &p.CognitiveStaleDays,
		"vision_board_stale_days":  &p.VisionBoardStaleDays,
	}
}

// ApplyTuning overrides Params fields from a tuning map keyed like Params.Tuning.
func ApplyTuning(p *algo.Params, tuning map[string]float64) error {
	fields := tuningFields(p)
	keys := slices.Sorted(maps.Keys(tuning))
	for _, key := range keys {
		field, ok := fields[strings.ToLower(key)]
		if !ok {
			return fmt.Errorf("unknown tuning key '%s'", key)
		}
		v := tuning[key]
		if v < 0 {
			return fmt.Errorf("tuning %s cannot be negative (received %.3f)", key, v)
		}
		*field = v
	}

	if p.EngagementMin <= 0 {
		return fmt.Errorf("engagement_min must be greater than 0")
	}
	if p.EngagementMin > p.EngagementMax {
		return fmt.Errorf("engagement_min (%.2f) cannot exceed engagement_max (%.2f)", p.EngagementMin, p.EngagementMax)
	}
	if p.CognitiveRecency.Floor > 1 {
		return fmt.Errorf("cognitive_floor cannot exceed 1 (received %.2f)", p.CognitiveRecency.Floor)
	}
	if p.MotivationalRecency.Floor > 1 {
		return fmt.Errorf("motivational_floor cannot exceed 1 (received %.2f)", p.MotivationalRecency.Floor)
	}
	if p.RatingScale <= 0 {
		return fmt.Errorf("rating_scale must be greater than 0")
	}
	if p.DefaultRoleScore > 100 {
		return fmt.Errorf("default_role_score cannot exceed 100 (received %.2f)", p.DefaultRoleScore)
	}
	return nil
}

// processParams builds the engine tuning from defaults, custom weights and tuning overrides.
func processParams(cfg *Config, input *ConfigRawInput) error {
	custom, merged, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = custom

	params := algo.DefaultParams()
	params.Weights = merged
	if err := ApplyTuning(&params, input.Tuning); err != nil {
		return err
	}
	cfg.Params = params
	return nil
}

// ThresholdKeys lists the keys a threshold can be set for, in display order.
var ThresholdKeys = append([]schema.ComponentKey{schema.OverallKey}, schema.AllComponents...)

// processThresholds converts the raw threshold input into cfg.Thresholds.
// Every key defaults to DefaultThreshold. Command-line --thresholds-override
// takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.ComponentKey]float64, len(ThresholdKeys))
	for _, key := range ThresholdKeys {
		thresholds[key] = DefaultThreshold
	}

	fromFile := map[schema.ComponentKey]*float64{
		schema.OverallKey:            input.Thresholds.Overall,
		schema.PersonalityComponent:  input.Thresholds.Personality,
		schema.CognitiveComponent:    input.Thresholds.Cognitive,
		schema.MotivationalComponent: input.Thresholds.Motivational,
		schema.BehavioralComponent:   input.Thresholds.Behavioral,
	}
	for key, v := range fromFile {
		if v != nil {
			thresholds[key] = *v
		}
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for key, threshold := range thresholds {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("threshold for %s must be between 0.0 and 100.0 (received %.2f)", key, threshold)
		}
	}

	cfg.Thresholds = thresholds
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseThresholdsString parses a string like "overall:60,behavioral:50"
// into a map of threshold key to minimum score.
func parseThresholdsString(s string) (map[schema.ComponentKey]float64, error) {
	thresholds := make(map[schema.ComponentKey]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'key:value'", part)
		}

		keyStr := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		key := schema.ComponentKey(keyStr)
		if !slices.Contains(ThresholdKeys, key) {
			return nil, fmt.Errorf("invalid threshold key '%s', must be overall, personality, cognitive, motivational or behavioral", keyStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, key, err)
		}

		thresholds[key] = value
	}

	return thresholds, nil
}
