package sdk

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	confirmPollInterval = 2 * time.Second
	confirmMaxAttempts  = 30
)

// WaitForConfirmation polls the service until the transaction signature is
// finalized, rendering a progress bar to w (pass io.Discard to disable).
func (c *Client) WaitForConfirmation(ctx context.Context, signature string, w io.Writer) error {
	bar := progressbar.NewOptions(confirmMaxAttempts,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("confirming transaction"),
		progressbar.OptionClearOnFinish(),
	)

	for attempt := 0; attempt < confirmMaxAttempts; attempt++ {
		var status struct {
			Finalized bool   `json:"finalized"`
			Err       string `json:"err,omitempty"`
		}
		err := c.call(ctx, "tally_getSignatureStatus", map[string]string{"signature": signature}, &status)
		if err != nil {
			return err
		}
		if status.Err != "" {
			bar.Finish()
			return fmt.Errorf("transaction %s failed: %s", signature, status.Err)
		}
		if status.Finalized {
			bar.Finish()
			return nil
		}

		bar.Add(1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(confirmPollInterval):
		}
	}

	return fmt.Errorf("transaction %s not confirmed after %s",
		signature, time.Duration(confirmMaxAttempts)*confirmPollInterval)
}
