package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/beatgraph/internal/conference"
)

// separatorFree keeps a school name to a single path element.
var separatorFree = strings.NewReplacer("/", "-", `\`, "-")

// OutputPath is where a job's chart is written. Full graphs sit at the
// charts root; school charts are grouped in "<tier> <DIV>" folders, with
// FCS schools always under "FCS FCS".
func OutputPath(chartsDir string, job Job, conf *conference.Conferences, format string) string {
	div := job.Filter.Upper()
	file := fmt.Sprintf("%s %s.%s", separatorFree.Replace(job.Name()), div, format)

	if job.Full {
		return filepath.Join(chartsDir, file)
	}

	folder := fmt.Sprintf("%s %s", conf.Tier(job.School), div)
	if job.Filter == conference.FCS {
		folder = "FCS FCS"
	}
	return filepath.Join(chartsDir, folder, file)
}
