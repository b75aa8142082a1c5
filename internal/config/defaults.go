package config

import (
	"os"
	"strconv"
)

// Environment variables consumed by the defaults provider and resolver.
const (
	EnvRPCURL              = "TALLY_RPC_URL"
	EnvDefaultOutputFormat = "TALLY_DEFAULT_OUTPUT_FORMAT"
	EnvEventsLookbackSecs  = "TALLY_DEFAULT_EVENTS_LOOKBACK_SECS"
	EnvProgramID           = "TALLY_PROGRAM_ID"
)

const defaultEventsLookbackSecs = 3600

// EnvDefaults supplies process-wide fallback values, read from the
// environment once at construction and never mutated afterward.
type EnvDefaults struct {
	// RPCURL is the fallback RPC endpoint.
	RPCURL string

	// OutputFormat is the fallback output format.
	OutputFormat string

	// EventsLookbackSecs is how far back dashboard events look by default.
	EventsLookbackSecs int64
}

// LoadEnvDefaults builds the defaults provider from the environment.
// An unparsable lookback value falls back to the literal, not an error.
func LoadEnvDefaults() EnvDefaults {
	d := EnvDefaults{
		RPCURL:             DevnetRPCURL,
		OutputFormat:       "human",
		EventsLookbackSecs: defaultEventsLookbackSecs,
	}
	if v, ok := os.LookupEnv(EnvRPCURL); ok {
		d.RPCURL = v
	}
	if v, ok := os.LookupEnv(EnvDefaultOutputFormat); ok {
		d.OutputFormat = v
	}
	if v, ok := os.LookupEnv(EnvEventsLookbackSecs); ok {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			d.EventsLookbackSecs = secs
		}
	}
	return d
}

// EventsSinceTimestamp returns the default lower bound for event queries.
func (d EnvDefaults) EventsSinceTimestamp(now int64) int64 {
	return now - d.EventsLookbackSecs
}
