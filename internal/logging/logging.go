package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Best-effort side effects (external
// blob deletes) report failures here instead of surfacing them.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.Out = os.Stdout
	Log.Formatter = &logrus.JSONFormatter{}
}
