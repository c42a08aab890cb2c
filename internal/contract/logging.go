package contract

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets up the standard logrus logger used by the pipeline.
// Debug output is only emitted when verbose is set.
func ConfigureLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
