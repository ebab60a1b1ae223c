package deviceatlas

// Config locates the dataset to load.
type Config struct {
	DatasetPath string `env:"DEVICEATLAS_DATASET,required"` // DatasetPath is the JSON dataset file.
}

// NewFromConfig loads the dataset referenced by cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Atlas, error) {
	return LoadFile(cfg.DatasetPath, opts...)
}
