package config

const (
	DefaultTimeZone       = "Asia/Kolkata"
	DefaultSchemeURL      = "https://portal.amfiindia.com/DownloadSchemeData_Po.aspx?mf=0"
	DefaultSchemeSchedule = "0 9 * * *"
	SchemeBatchSize       = 1000
	MaxSyncRetries        = 3
)
