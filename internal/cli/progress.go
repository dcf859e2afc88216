package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/largeint/internal/format"
	"github.com/agbru/largeint/internal/oracle"
)

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// while verification workers report on progressChan. It returns once the
// channel is closed and marks wg done.
//
// Parameters:
//   - wg: The WaitGroup to signal on return.
//   - progressChan: Per-worker completion updates.
//   - numWorkers: The number of workers reporting.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan oracle.Update, numWorkers int, out io.Writer) {
	defer wg.Done()
	if numWorkers <= 0 {
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numWorkers)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var avg float64
	var eta time.Duration
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%6.2f%% [%s]\n", avg*100, format.ProgressBar(avg, ProgressBarWidth))
				return
			}
			avg, eta = state.UpdateWithETA(update.WorkerIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
		}
	}
}
