package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	BlobRoot          string        `env:"BLOB_ROOT,required=true"`
	BlobBaseURL       string        `env:"BLOB_BASE_URL,default=http://localhost:8080/blobs"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	WriteBufferSize   int           `env:"WRITE_BUFFER_SIZE,default=256"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
	TokenDuration     time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=5s"`
	CensorReplacement string        `env:"CENSOR_REPLACEMENT,default=*"`
	InspectHost       string        `env:"INSPECT_HOST,default=localhost"`
	InspectPort       int           `env:"INSPECT_PORT,default=8090"`
	SeedDemo          bool          `env:"SEED_DEMO,default=false"`
}

// CharacterRune converts the single-character censor replacement setting.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSOR_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}
