package config

// SampleConfig returns a documented configuration file with every option
func SampleConfig() string {
	return `# PneumoDetect configuration
version: "1.0"

# Remote classification service
api:
  # Service root; the client calls POST /analyze and GET /history
  base_url: "http://localhost:5000"
  # Per-request timeout
  timeout: 30s

# Interactive interface
ui:
  # en or vi
  language: "en"
  # default, high-contrast or minimal
  theme: "default"
  # How long notifications stay on screen
  toast_duration: 5s

# Image selection
upload:
  # Largest accepted image in bytes (10MB)
  max_file_size: 10485760

# Local scratch files
storage:
  # Directory for preview files; empty uses the system temp directory
  preview_dir: ""
  # Where the download key saves a copy of the analyzed image
  download_dir: "~/Downloads"

# Command output
output:
  # text, json, markdown or csv
  default_format: "text"
  # auto, always or never
  color_mode: "auto"
  verbose: false
  timestamp_format: "2006-01-02 15:04:05"

# pneumodetect watch
watch:
  extensions: [".jpg", ".jpeg", ".png"]
  # Wait this long after the last write before analyzing a file
  debounce: 500ms

# pneumodetect mock-server
mock_server:
  addr: ":5000"
  # 0 picks a time-based seed
  seed: 0
  # Simulated inference delay
  latency: 1500ms

logging:
  # Diagnostics go here while the interactive UI owns the terminal
  file: "~/.cache/pneumodetect/pneumodetect.log"
`
}

// MinimalSampleConfig returns a configuration file with only the common settings
func MinimalSampleConfig() string {
	return `# PneumoDetect configuration
api:
  base_url: "http://localhost:5000"
ui:
  language: "en"
output:
  default_format: "text"
`
}
