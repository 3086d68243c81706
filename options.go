package actpak

import "log/slog"

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger for every pass.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Project) {
		p.logger = logger
	}
}

// WithOutputDir sets the directory extracted assets are written under.
// The value is normalized with NormalizeDir. When unset or blank, assets go
// to "Output" inside the project root.
func WithOutputDir(dir string) Option {
	return func(p *Project) {
		p.outputDir = NormalizeDir(dir)
	}
}

// WithLogFrequency logs only every n-th per-asset line.
// Values <= 0 log every asset.
func WithLogFrequency(n int) Option {
	return func(p *Project) {
		p.logFrequency = max(n, 0)
	}
}

// WithProgress sets a callback for progress updates during every pass.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Project) {
		p.progress = fn
	}
}
