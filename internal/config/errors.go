package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoActiveProfile is returned when an operation needs the active profile
// and none is set.
var ErrNoActiveProfile = errors.New(
	"no active profile set\n\n" +
		"Run 'tally-merchant config init' to create a config file with default profiles,\n" +
		"then 'tally-merchant config profile use <name>' to activate one")

// ErrMissingProgramID is returned when no source supplies a program ID for a
// command that needs chain access.
var ErrMissingProgramID = errors.New(
	"this command requires connection to the ledger.\n" +
		"\n" +
		"Program ID not configured. You can fix this by:\n" +
		"\n" +
		"1. Set the TALLY_PROGRAM_ID environment variable:\n" +
		"   export TALLY_PROGRAM_ID=<your-program-id>\n" +
		"\n" +
		"2. Or configure it in your profile:\n" +
		"   tally-merchant config init\n" +
		"   tally-merchant config set program-id <your-program-id>\n" +
		"\n" +
		"3. Or pass it as a CLI flag:\n" +
		"   tally-merchant --program-id <your-program-id> <command>")

// ParseError indicates the persisted config file is malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnknownKeyError indicates a config key outside the recognized set.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q\n\nRecognized keys: %s",
		e.Key, strings.Join(KnownKeys(), ", "))
}

// ProfileExistsError indicates a create collided with an existing profile name.
type ProfileExistsError struct {
	Name string
}

func (e *ProfileExistsError) Error() string {
	return fmt.Sprintf("profile %q already exists\n"+
		"Use 'tally-merchant config set' to modify existing profiles", e.Name)
}

// ProfileNotFoundError indicates a named profile is absent from the config.
type ProfileNotFoundError struct {
	Name  string
	Known []string
}

func (e *ProfileNotFoundError) Error() string {
	known := append([]string(nil), e.Known...)
	sort.Strings(known)
	return fmt.Sprintf("profile %q not found\n\nAvailable profiles:\n  %s\n\n"+
		"Use 'tally-merchant config profile create' to create a new profile",
		e.Name, strings.Join(known, "\n  "))
}
