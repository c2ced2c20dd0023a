package city

import "time"

// Config holds city storage settings.
type Config struct {
	Collection       string        `env:"CITY_COLLECTION" envDefault:"cities"`
	OperationTimeout time.Duration `env:"CITY_OPERATION_TIMEOUT" envDefault:"5s"`
}
