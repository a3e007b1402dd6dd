package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Storage  MStorageConfig  `yaml:"storage"`
	Data     MDataConfig     `yaml:"data"`
	Analysis MAnalysisConfig `yaml:"analysis"`
	Report   MReportConfig   `yaml:"report"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MDataConfig struct {
	RefreshIntervalSeconds int             `yaml:"refresh_interval_seconds"`
	Sources                []MSourceConfig `yaml:"sources"`
}

type MSourceConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type MAnalysisConfig struct {
	StartDate              string              `yaml:"start_date"` // YYYY-MM-DD, empty = no bound
	EndDate                string              `yaml:"end_date"`
	MinTransactionAmount   float64             `yaml:"min_transaction_amount"`
	MaxTransactionAmount   float64             `yaml:"max_transaction_amount"`
	TotalMismatchTolerance float64             `yaml:"total_mismatch_tolerance"`
	BusinessHours          MBusinessHoursRange `yaml:"business_hours"`
	CalendarRegion         string              `yaml:"calendar_region"` // holiday calendar, e.g. "us"
}

type MBusinessHoursRange struct {
	Start string `yaml:"start"` // "06:00"
	End   string `yaml:"end"`   // "22:00"
}

type MReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Title     string `yaml:"title"`
}
