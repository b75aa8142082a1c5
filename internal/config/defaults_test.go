package config

import (
	"testing"
)

func TestLoadEnvDefaults_Fallbacks(t *testing.T) {
	clearResolverEnv(t)

	d := LoadEnvDefaults()
	if d.RPCURL != DevnetRPCURL {
		t.Errorf("RPCURL = %q, want %q", d.RPCURL, DevnetRPCURL)
	}
	if d.OutputFormat != "human" {
		t.Errorf("OutputFormat = %q, want human", d.OutputFormat)
	}
	if d.EventsLookbackSecs != 3600 {
		t.Errorf("EventsLookbackSecs = %d, want 3600", d.EventsLookbackSecs)
	}
}

func TestLoadEnvDefaults_Overrides(t *testing.T) {
	clearResolverEnv(t)
	t.Setenv(EnvRPCURL, "https://override.example.com")
	t.Setenv(EnvDefaultOutputFormat, "json")
	t.Setenv(EnvEventsLookbackSecs, "7200")

	d := LoadEnvDefaults()
	if d.RPCURL != "https://override.example.com" {
		t.Errorf("RPCURL = %q", d.RPCURL)
	}
	if d.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q", d.OutputFormat)
	}
	if d.EventsLookbackSecs != 7200 {
		t.Errorf("EventsLookbackSecs = %d", d.EventsLookbackSecs)
	}
}

func TestLoadEnvDefaults_BadLookbackIgnored(t *testing.T) {
	clearResolverEnv(t)
	t.Setenv(EnvEventsLookbackSecs, "not-a-number")

	d := LoadEnvDefaults()
	if d.EventsLookbackSecs != 3600 {
		t.Errorf("EventsLookbackSecs = %d, want fallback 3600", d.EventsLookbackSecs)
	}
}

func TestLoadEnvDefaults_EmptyRPCURL(t *testing.T) {
	clearResolverEnv(t)
	t.Setenv(EnvRPCURL, "")

	// A set-but-empty endpoint variable is taken literally.
	d := LoadEnvDefaults()
	if d.RPCURL != "" {
		t.Errorf("RPCURL = %q, want empty", d.RPCURL)
	}
}

func TestEventsSinceTimestamp(t *testing.T) {
	d := EnvDefaults{EventsLookbackSecs: 3600}
	if got := d.EventsSinceTimestamp(7200); got != 3600 {
		t.Errorf("EventsSinceTimestamp(7200) = %d, want 3600", got)
	}
}
