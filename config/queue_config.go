package config

// QueueConfig represents configuration for the background fetch queue
type QueueConfig struct {
	// Workers is the number of goroutines draining the queue
	Workers int `yaml:"workers"`

	// Size is the job buffer capacity; enqueueing into a full queue fails fast
	Size int `yaml:"size"`
}
