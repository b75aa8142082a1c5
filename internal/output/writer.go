package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Mode selects the rendering format for command results.
type Mode int

const (
	ModeHuman Mode = iota
	ModeJSON
	ModeCSV
)

// ModeFromFormat converts a resolved output format name to a Mode.
// The format is expected to be pre-validated by the resolver.
func ModeFromFormat(format string) Mode {
	switch format {
	case "json":
		return ModeJSON
	case "csv":
		return ModeCSV
	default:
		return ModeHuman
	}
}

// envelope is the JSON wrapper emitted in JSON mode.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Printer renders command results and status messages. Color behavior is
// fixed at construction; nothing is read lazily from globals afterward.
type Printer struct {
	stdout io.Writer
	stderr io.Writer
	mode   Mode
}

// NewPrinter creates a Printer. noColor disables ANSI colors; the NO_COLOR
// environment variable is honored via the same switch by the caller.
func NewPrinter(stdout, stderr io.Writer, mode Mode, noColor bool) *Printer {
	if noColor {
		color.NoColor = true
	}
	return &Printer{
		stdout: stdout,
		stderr: stderr,
		mode:   mode,
	}
}

// Mode returns the printer's rendering mode.
func (p *Printer) Mode() Mode { return p.mode }

// Success renders a command result. text is pre-formatted human/CSV output;
// in JSON mode it is wrapped in the success envelope.
func (p *Printer) Success(text string) error {
	if p.mode == ModeJSON {
		return p.writeEnvelope(envelope{Success: true, Data: text})
	}
	_, err := fmt.Fprintln(p.stdout, text)
	return err
}

// SuccessJSON renders a structured result: indented JSON in JSON mode,
// wrapped in the success envelope; pretty JSON without the envelope otherwise.
func (p *Printer) SuccessJSON(v any) error {
	if p.mode == ModeJSON {
		return p.writeEnvelope(envelope{Success: true, Data: v})
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.stdout, string(data))
	return err
}

// Failure renders a command error and is the only place the error reaches the
// user: stderr in human/CSV mode, the JSON error envelope on stdout otherwise.
func (p *Printer) Failure(cmdErr error) {
	switch p.mode {
	case ModeJSON:
		p.writeEnvelope(envelope{Success: false, Error: cmdErr.Error()})
	case ModeCSV:
		fmt.Fprintf(p.stderr, "Error: %v\n", cmdErr)
	default:
		fmt.Fprintf(p.stderr, "%s: %v\n", color.RedString("Error"), cmdErr)
	}
}

// CSV writes rows with a header to stdout in RFC 4180 form.
func (p *Printer) CSV(header []string, rows [][]string) error {
	w := csv.NewWriter(p.stdout)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Info writes an informational message to stderr. Never part of the
// machine-readable stdout stream.
func (p *Printer) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.stderr, "%s %s\n", color.CyanString("tally:"), msg)
}

// Warn writes a warning message to stderr.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.stderr, "%s %s\n", color.YellowString("tally:"), msg)
}

func (p *Printer) writeEnvelope(env envelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON envelope: %w", err)
	}
	_, err = fmt.Fprintln(p.stdout, string(data))
	return err
}

// Stdout exposes the underlying stdout writer for table rendering.
func (p *Printer) Stdout() io.Writer { return p.stdout }

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
