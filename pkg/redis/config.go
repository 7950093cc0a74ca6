package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"VALIDATOR_REDIS_URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the server, e.g. "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"VALIDATOR_REDIS_RETRY_ATTEMPTS" envDefault:"3"`             // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"VALIDATOR_REDIS_RETRY_INTERVAL" envDefault:"1s"`            // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"VALIDATOR_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`          // ConnectTimeout bounds the whole connection phase.
	KeyPrefix      string        `env:"VALIDATOR_REDIS_KEY_PREFIX"`                                // KeyPrefix is prepended to every set name used by the membership rules.
}
