package orbel

import (
	"io"

	kitlog "github.com/go-kit/log"
)

// NewLogger returns a logfmt logger writing to w, tagged with the scenario name.
func NewLogger(w io.Writer, scenario string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	return kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC, "scenario", scenario)
}
