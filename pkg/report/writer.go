package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	// filenamePrefix starts the name of every timestamped report
	filenamePrefix = "paused_dependabot_repos_"
	// timestampLayout is the layout of the timestamp in report names
	timestampLayout = "2006-01-02_15-04-05"

	indent   = "    "
	fileMode = 0o644
)

// DefaultFilename returns the name of the report written at the specified time, e.g.
// "paused_dependabot_repos_2024-01-02_15-04-05.json".
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("%s%s.json", filenamePrefix, now.Format(timestampLayout))
}

// Write writes the entries as a JSON object to filename, replacing any existing file. Keys
// are sorted so the same entries always produce the same file. A nil map is written as {}.
func Write(entries map[string][]string, filename string) error {
	if entries == nil {
		entries = map[string][]string{}
	}

	buf, err := json.MarshalIndent(entries, "", indent)
	if err != nil {
		return errors.Wrap(err, "could not marshal report")
	}
	buf = append(buf, '\n')

	if err := os.WriteFile(filename, buf, fileMode); err != nil {
		return errors.Wrapf(err, "could not write report to %s", filename)
	}

	return nil
}
