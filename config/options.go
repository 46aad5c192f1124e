package config // import "github.com/bookgrove/bookgrove/config"

const (
	defaultLogFile           = "bookgrove.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/bookgrove"
	defaultDSN               = defaultData + "/bookgrove.db"
	defaultVersion           = "0.2.1"

	defaultPageSize       = 5
	defaultRatingMin      = 1
	defaultRatingMax      = 5
	defaultReviewTextMin  = 10
	defaultReviewTextMax  = 1000
	defaultMinPublishYear = 1000

	defaultJWTSecret      = ""
	defaultWorkerPoolSize = 1
)

var Opts *Options

// Options use mapstructure tags instead of json because viper unmarshals
// through mapstructure.
// See: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data    string `mapstructure:"data"`
	Version string `mapstructure:"version"`

	// PageSize is the number of books per catalog page
	PageSize int `mapstructure:"page_size"`
	// RatingMin and RatingMax bound review star ratings, inclusive
	RatingMin int `mapstructure:"rating_min"`
	RatingMax int `mapstructure:"rating_max"`
	// ReviewTextMin and ReviewTextMax bound review text length, inclusive
	ReviewTextMin int `mapstructure:"review_text_min"`
	ReviewTextMax int `mapstructure:"review_text_max"`
	// MinPublishYear is the lowest accepted published year; the upper
	// bound is always the current year plus one
	MinPublishYear int `mapstructure:"min_publish_year"`

	// JWTSecret signs access tokens; generated on first run when empty
	JWTSecret string `mapstructure:"jwt_secret"`
	// WorkerPoolSize is the number of catalog refresh workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		DSN:               defaultDSN,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		Version:           defaultVersion,
		PageSize:          defaultPageSize,
		RatingMin:         defaultRatingMin,
		RatingMax:         defaultRatingMax,
		ReviewTextMin:     defaultReviewTextMin,
		ReviewTextMax:     defaultReviewTextMax,
		MinPublishYear:    defaultMinPublishYear,
		JWTSecret:         defaultJWTSecret,
		WorkerPoolSize:    defaultWorkerPoolSize,
	}
	return Opts
}
