package fetch

// Config holds configuration for the fetch feature.
type Config struct {
	// DownloadPath is the local destination used by Download when the caller
	// does not provide one.
	DownloadPath string `mapstructure:"download_path" default:"/tmp/downloaded_file.pdf"`
}
