package constants

import "time"

// Version is the release version reported by the CLI and the user agent. It
// is overridden at build time with -ldflags.
var Version = "0.1.0"

// API endpoint and paths.
const (
	// DefaultAPIEndpoint is the base URL every path is appended to.
	DefaultAPIEndpoint = "https://api.digitalocean.com/v2"

	DropletsPath = "/droplets"
	ImagesPath   = "/images"
	RegionsPath  = "/regions"
	SizesPath    = "/sizes"
	ActionsPath  = "/actions"

	// AuthorizePath is fetched with a candidate token to validate it.
	AuthorizePath = ActionsPath
)

// Pagination of collection endpoints.
const (
	// DefaultPerPage is requested on every collection page.
	DefaultPerPage = 200

	// MaxPages stops a listing that never reports a last page.
	MaxPages = 100
)

// Response document keys.
const (
	KeyDroplet  = "droplet"
	KeyDroplets = "droplets"
	KeyImage    = "image"
	KeyImages   = "images"
	KeyRegions  = "regions"
	KeySizes    = "sizes"
	KeyAction   = "action"
	KeyActions  = "actions"
)

// User agent.
const (
	// UserAgentFormat renders the default agent string from Version.
	UserAgentFormat = "Batfish (%s)"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and token files.
	ConfigFilePerm = 0600
)

// Local files, relative to the user's home directory.
const (
	// TokenFileName holds the raw API token.
	TokenFileName = ".batfish"

	// ConfigFileName is the viper configuration file.
	ConfigFileName = ".batfish"
	ConfigFileType = "yml"

	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "BATFISH"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultConnectTimeout bounds dialing the API.
	DefaultConnectTimeout = 10 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless configured.
const (
	DefaultRetryMax     = 0
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 10 * time.Second
)

// Audit events.
const (
	// DefaultEventSubject is the NATS subject state changes are published on.
	DefaultEventSubject = "batfish.events"

	// EventPublishTimeout bounds a single publish and flush.
	EventPublishTimeout = 2 * time.Second

	// DefaultPollInterval and DefaultPollTimeout drive action waiting.
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 10 * time.Minute
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// ShellPrompt is printed before each line read by the interactive shell.
	ShellPrompt = "batfish > "

	// ConfirmPrompt is asked before destructive operations.
	ConfirmPrompt = "Are you sure you want to do this? [y/N] "

	// MaskVisibleChars is the number of trailing token characters left visible.
	MaskVisibleChars = 4
)

// Boolean string constants.
const (
	BooleanTrue  = "true"
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitUnauthorized = 2
	ExitNotFound     = 3
)
