package config

// this holds the resolved configuration values from CLI
var (
	LogLevel   string // sets the log level (zap log level values)
	LogFormat  string // text vs json
	LogFilters string // zapfilter rules for named loggers
	Output     string // output format for analysis results (text, json)
	NumSamples int    // grid size for cross-lap normalization
)
